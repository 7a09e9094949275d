package middleware

import (
	"errors"   // Error comparison
	"net/http" // HTTP status codes

	"deluxe_membership/internal/domain"  // Domain models
	"deluxe_membership/internal/session" // Session registry
	"deluxe_membership/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// Context keys set by the auth middlewares
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	TokenKey  = "token"
)

// JWTAuthMiddleware requires a valid bearer token that is registered in the session store
// and attaches the session's user id and role to the context
func JWTAuthMiddleware(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.TokenFromRequest(c.Request) // Extract the bearer token
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Invalid or expired token"})
			return
		}
		user, err := sessions.Get(c.Request.Context(), tokenStr) // Token must have been issued by us
		if errors.Is(err, session.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Session expired"})
			return
		}
		if err != nil {
			logrus.WithError(err).Error("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Internal server error"})
			return
		}
		c.Set(UserIDKey, user.ID)
		c.Set(RoleKey, claims.Role)
		c.Set(TokenKey, tokenStr)
		c.Next()
	}
}

// OptionalAuth attaches the role of a valid bearer token and lets every request through
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := utils.ParseJWT(utils.TokenFromRequest(c.Request), secret); err == nil {
			c.Set(UserIDKey, claims.UserID)
			c.Set(RoleKey, claims.Role)
		}
		c.Next()
	}
}

// RoleFrom returns the role attached by the auth middlewares, or RoleNone
func RoleFrom(c *gin.Context) domain.Role {
	if v, ok := c.Get(RoleKey); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return domain.RoleNone
}

// UserIDFrom returns the authenticated user id
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
