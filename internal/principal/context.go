package principal

import (
	"github.com/gin-gonic/gin"
)

// FromContext retrieves the resolved principal set by the auth middleware.
func FromContext(c *gin.Context) (Principal, bool) {
	v, exists := c.Get("principal")
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
