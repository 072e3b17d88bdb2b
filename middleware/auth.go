package middleware

import (
	"net/http"
	"strings"

	"suncrest/utils"

	"github.com/gin-gonic/gin"
)

// Identity attaches the authenticated user ID to the context when a
// valid bearer token is presented. Requests without one pass through
// unauthenticated; the wizard decides per step whether that is allowed.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.Next()
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.Next()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// RequireIdentity rejects requests that did not authenticate.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userID") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Insufficient authorization",
				"redirect": "/pages/auth",
			})
			return
		}
		c.Next()
	}
}
