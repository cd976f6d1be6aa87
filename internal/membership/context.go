package membership

import (
	"github.com/gin-gonic/gin"
)

// FromContext retrieves the membership attached by the band-member guard.
func FromContext(c *gin.Context) (Membership, bool) {
	v, exists := c.Get("membership")
	if !exists {
		return Membership{}, false
	}
	m, ok := v.(Membership)
	return m, ok
}
