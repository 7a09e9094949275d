package middleware

import (
	"net/http" // HTTP status codes

	"deluxe_membership/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := UserIDFrom(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Unauthorized"})
			return
		}
		var user domain.User // Token claims may be stale, trust the stored role only
		if err := db.WithContext(c.Request.Context()).Select("id", "role").First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "error": "Admin access required"})
			return
		}
		if !user.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "error": "Admin access required"})
			return
		}
		c.Next()
	}
}
