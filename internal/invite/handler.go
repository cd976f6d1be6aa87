package invite

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// Issue - POST /bands/:bandId/invites
func (h *Handler) Issue(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	inv, err := h.Service.Issue(c.Request.Context(), actor, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// Revoke - DELETE /bands/:bandId/invites/:token
func (h *Handler) Revoke(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	token := c.Param("token")
	if token == "" {
		httperr.Respond(c, httperr.Validation("token is required"))
		return
	}

	if err := h.Service.Revoke(c.Request.Context(), actor, token, middleware.GetIPFromContext(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invite revoked"})
}

type acceptRequest struct {
	Token        string `json:"token" binding:"required"`
	DisplayAlias string `json:"display_alias,omitempty"`
}

// Accept - POST /invites/accept
func (h *Handler) Accept(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	var req acceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	m, err := h.Service.Accept(c.Request.Context(), p.ID, req.Token, req.DisplayAlias, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
