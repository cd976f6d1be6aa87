package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/reqctx"
)

// AuditMiddleware extracts and stores IP address for audit logging
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", reqctx.ClientIP(c))
		c.Next()
	}
}

// GetIPFromContext retrieves IP address from gin context
func GetIPFromContext(c *gin.Context) string {
	return reqctx.GetIPFromContext(c)
}
