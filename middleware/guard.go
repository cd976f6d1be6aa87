package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
	"github.com/bandmate-app/band-scheduling-backend/internal/reqctx"
)

// RequireBandMember is the authorization guard in front of every band-scoped
// route. It resolves the caller's membership in the :bandId band and attaches
// it to the request context; downstream handlers read the authoring
// membership and role from there, never from the request body.
func RequireBandMember(directory membership.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "kind": "unauthenticated"})
			return
		}

		bandID, err := strconv.ParseUint(c.Param("bandId"), 10, 32)
		if err != nil || bandID == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid band id", "kind": "validation"})
			return
		}

		m, err := directory.GetMembership(c.Request.Context(), p.ID, uint(bandID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "internal"})
			return
		}
		if m == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a member of this band", "kind": "forbidden"})
			return
		}

		c.Set("membership", *m)
		c.Set("band_id", uint(bandID))
		c.Next()
	}
}

// RequireBandRole gates role-restricted operations. Chain it after
// RequireBandMember.
func RequireBandRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := MembershipFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "membership missing from context", "kind": "unauthenticated"})
			return
		}

		for _, role := range roles {
			if m.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role", "kind": "forbidden"})
	}
}

// MembershipFromContext retrieves the membership attached by RequireBandMember.
func MembershipFromContext(c *gin.Context) (membership.Membership, bool) {
	return membership.FromContext(c)
}

// BandIDFromContext retrieves the band id attached by RequireBandMember.
func BandIDFromContext(c *gin.Context) (uint, bool) {
	return reqctx.BandIDFromContext(c)
}
