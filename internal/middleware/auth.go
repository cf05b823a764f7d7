package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamtrack/task-tracker-api/internal/constants"
	apierrors "github.com/teamtrack/task-tracker-api/internal/errors"
	"github.com/teamtrack/task-tracker-api/internal/models"
	"github.com/teamtrack/task-tracker-api/internal/services"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token and resolves its subject to a stored
// user. Missing, malformed, expired, and orphaned tokens all get the same 401
// so callers learn nothing about which check failed.
func RequireAuth(tokens *services.TokenService, auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		user, err := auth.GetUserByUsername(claims.Subject)
		if err != nil {
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireRole gates an endpoint on the caller's role being in the given set.
// Must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, roleRequiredMessage(roles))
		c.Abort()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}

	return user, true
}

func roleRequiredMessage(roles []models.Role) string {
	quoted := make([]string, len(roles))
	for i, role := range roles {
		quoted[i] = "'" + string(role) + "'"
	}

	if len(quoted) == 1 {
		return "Action requires " + quoted[0] + " role"
	}
	return "Action requires one of the following roles: " + strings.Join(quoted, ", ")
}
