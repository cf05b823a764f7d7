package constants

// Context keys
const (
	// ContextKeyUser is the gin context key holding the authenticated user.
	ContextKeyUser = "current_user"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength      = 8
	DefaultTokenTTLMinutes = 30
)

// EmailDomain is appended to usernames to derive notification addresses.
// There is no stored contact address; recipients are always synthesized.
const EmailDomain = "example.com"
