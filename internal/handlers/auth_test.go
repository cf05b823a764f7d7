package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamtrack/task-tracker-api/internal/dto"
	"github.com/teamtrack/task-tracker-api/internal/models"
	"github.com/teamtrack/task-tracker-api/internal/repository"
	"github.com/teamtrack/task-tracker-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService("test-secret", time.Hour)
	handler := NewAuthHandler(authService, tokenService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/token", handler.Token)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func signupJSON(t *testing.T, env authTestEnv, username, password string, role models.Role) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
		"role":     string(role),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)
	return w
}

func requestToken(t *testing.T, env authTestEnv, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := signupJSON(t, env, "newuser", "supersecret", models.RoleDeveloper)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.Equal(t, models.RoleDeveloper, response.Role)
	require.NotZero(t, response.ID)

	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "hash")
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := signupJSON(t, env, "existing", "supersecret", models.RoleManager)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, env.db.Where("username = ?", "existing").First(&stored).Error)

	w = signupJSON(t, env, "existing", "anotherpassword", models.RoleDeveloper)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Username already registered")

	// The original user's stored hash must be untouched.
	var after models.User
	require.NoError(t, env.db.Where("username = ?", "existing").First(&after).Error)
	require.Equal(t, stored.PasswordHash, after.PasswordHash)
	require.Equal(t, stored.Role, after.Role)
}

func TestAuthHandler_Signup_InvalidRole(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := signupJSON(t, env, "someone", "supersecret", "Superuser")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Token(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := signupJSON(t, env, "alice", "supersecret", models.RoleAdmin)
	require.Equal(t, http.StatusOK, w.Code)

	w = requestToken(t, env, "alice", "supersecret")
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	require.Equal(t, "bearer", response.TokenType)
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := signupJSON(t, env, "bob", "supersecret", models.RoleDeveloper)
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown user must be indistinguishable.
	wrongPassword := requestToken(t, env, "bob", "wrongpassword")
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownUser := requestToken(t, env, "nobody", "supersecret")
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}
