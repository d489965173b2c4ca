package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth guards settlement trigger endpoints with a shared secret.
// The external scheduler sends "Authorization: Bearer <token>"; comparison
// is constant-time so the token can't be probed byte by byte.
func BearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			// No token configured means the deployment forgot it; fail closed.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "settlement token not configured"})
			return
		}
		header := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
