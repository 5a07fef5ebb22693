package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"gainz_journal/internal/domain"
	"gainz_journal/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
)

// JWTAuthMiddleware validates JWT tokens and resolves the calling user.
// The full user row (minus secret columns in serialized form) is stored
// in the request context for downstream handlers.
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, token failed"})
			return
		}
		// The token subject must still exist
		var user domain.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, user not found"})
			return
		}
		c.Set(ContextUserKey, &user)     // Store resolved user in context
		c.Set(ContextUserIDKey, user.ID) // Store userID in context
		c.Next()                         // Proceed to the next handler
	}
}

// CurrentUser returns the authenticated user attached by JWTAuthMiddleware
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
