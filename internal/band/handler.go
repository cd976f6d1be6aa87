package band

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

// CreateBand - POST /bands
func (h *Handler) CreateBand(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	var req CreateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	b, err := h.Service.CreateBand(c.Request.Context(), p.ID, req, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBand - GET /bands/:bandId
func (h *Handler) GetBand(c *gin.Context) {
	bandID, _ := middleware.BandIDFromContext(c)

	b, err := h.Service.GetBand(c.Request.Context(), bandID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBand - PATCH /bands/:bandId
func (h *Handler) UpdateBand(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	var req UpdateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	b, err := h.Service.UpdateBand(c.Request.Context(), actor, req, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBand - DELETE /bands/:bandId
func (h *Handler) DeleteBand(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	if err := h.Service.DeleteBand(c.Request.Context(), actor, middleware.GetIPFromContext(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "band deleted"})
}
