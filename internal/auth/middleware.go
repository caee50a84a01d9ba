package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
)

// Context keys set by the authentication middleware.
const (
	ContextUserID      = "userID"
	ContextAuthType    = "authType"
	ContextAccessLevel = "accessLevel"
)

// validateAPIKey looks up the presented key and checks its expiry.
func validateAPIKey(c *gin.Context, queries db.Querier, apiKey string) (db.ApiKey, error) {
	key, err := queries.GetAPIKeyByKey(c.Request.Context(), apiKey)
	if err != nil {
		return db.ApiKey{}, fmt.Errorf("invalid API key")
	}
	if key.ExpiresAt.Valid && key.ExpiresAt.Time.Before(time.Now()) {
		return db.ApiKey{}, ErrAPIKeyExpired
	}
	return key, nil
}

// validateBearerToken validates the Authorization header and loads the user.
func validateBearerToken(c *gin.Context, queries db.Querier, authHeader string) (db.User, error) {
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		return db.User{}, ErrInvalidToken
	}

	userID, err := ValidateToken(token)
	if err != nil {
		return db.User{}, err
	}

	user, err := queries.GetUser(c.Request.Context(), userID)
	if err != nil {
		return db.User{}, fmt.Errorf("user not found")
	}
	return user, nil
}

// EnsureValidAPIKeyOrToken is a middleware that checks for either a valid
// API key or a bearer token. The X-API-Key header is checked first, then
// the Authorization header. Sets userID, authType and accessLevel on the
// request context.
func EnsureValidAPIKeyOrToken(queries db.Querier) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey != "" {
			key, err := validateAPIKey(c, queries, apiKey)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				c.Abort()
				return
			}

			c.Set(ContextUserID, key.UserID)
			c.Set(ContextAccessLevel, key.AccessLevel)
			c.Set(ContextAuthType, constants.AuthTypeAPIKey)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authentication provided"})
			c.Abort()
			return
		}

		user, err := validateBearerToken(c, queries, authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextAccessLevel, constants.AccessLevelAdmin)
		c.Set(ContextAuthType, constants.AuthTypeJWT)
		c.Next()
	}
}

// RequireRoles gates a route on API key access level. Bearer-token
// sessions always pass: a logged-in user owns their resources.
func RequireRoles(levels ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextAuthType) != constants.AuthTypeAPIKey {
			c.Next()
			return
		}

		accessLevel := c.GetString(ContextAccessLevel)
		for _, level := range levels {
			if accessLevel == level || accessLevel == constants.AccessLevelAdmin {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient API key access level"})
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
