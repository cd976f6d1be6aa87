package membership

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/principal"
	"github.com/bandmate-app/band-scheduling-backend/internal/reqctx"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ListBandMembers - GET /bands/:bandId/members
func (h *Handler) ListBandMembers(c *gin.Context) {
	bandID, _ := reqctx.BandIDFromContext(c)

	members, err := h.Service.ListBandMembers(c.Request.Context(), bandID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// ListMyMemberships - GET /users/me/memberships
func (h *Handler) ListMyMemberships(c *gin.Context) {
	p, ok := principal.FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	memberships, err := h.Service.ListMemberships(c.Request.Context(), p.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, memberships)
}

// ChangeRole - PATCH /bands/:bandId/members/:membershipId/role
func (h *Handler) ChangeRole(c *gin.Context) {
	actor, ok := FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	membershipID, err := strconv.ParseUint(c.Param("membershipId"), 10, 32)
	if err != nil || membershipID == 0 {
		httperr.Respond(c, httperr.Validation("invalid membership id"))
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	updated, err := h.Service.ChangeRole(c.Request.Context(), actor, uint(membershipID), req.Role, reqctx.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RemoveMember - DELETE /bands/:bandId/members/:membershipId
func (h *Handler) RemoveMember(c *gin.Context) {
	actor, ok := FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	membershipID, err := strconv.ParseUint(c.Param("membershipId"), 10, 32)
	if err != nil || membershipID == 0 {
		httperr.Respond(c, httperr.Validation("invalid membership id"))
		return
	}

	if err := h.Service.RemoveMember(c.Request.Context(), actor, uint(membershipID), reqctx.GetIPFromContext(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

// UpdateMyIdentity - PATCH /bands/:bandId/members/me
func (h *Handler) UpdateMyIdentity(c *gin.Context) {
	actor, ok := FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	var req UpdateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	updated, err := h.Service.UpdateIdentity(c.Request.Context(), actor, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
