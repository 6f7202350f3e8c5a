package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects anyone whose loaded role is not "admin". Must run
// after AuthRequired.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get(CtxRole)
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access only"})
		c.Abort()
		return
	}
	c.Next()
}
