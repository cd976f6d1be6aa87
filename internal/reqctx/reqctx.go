// Package reqctx holds request-scoped context accessors that depend only on
// gin, so both middleware and the packages middleware depends on can use them
// without import cycles.
package reqctx

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP extracts the real client IP from various headers
func ClientIP(c *gin.Context) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if isValidIP(ip) {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-Ip"); xri != "" && isValidIP(xri) {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// GetIPFromContext retrieves IP address from gin context
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if ipStr, ok := ip.(string); ok {
			return ipStr
		}
	}
	return ClientIP(c)
}

// BandIDFromContext retrieves the band id attached by RequireBandMember.
func BandIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("band_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
