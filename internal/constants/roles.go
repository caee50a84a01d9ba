package constants

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// API key access levels
const (
	AccessLevelRead  = "read"
	AccessLevelWrite = "write"
	AccessLevelAdmin = "admin"
)

// Auth types
const (
	AuthTypeAPIKey = "api_key"
	AuthTypeJWT    = "jwt"
)
