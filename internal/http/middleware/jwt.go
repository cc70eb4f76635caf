package middleware

import (
	"net/http"
	"strings"

	"wordmint/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT validates the session token and stores session_id in the context
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		sessionID, err := service.ParseSessionToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}
