package readiness

import (
	"net/http"
	"strconv"

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

func eventIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, httperr.Validation("invalid event id")
	}
	return uint(id), nil
}

// SetMark - PUT /bands/:bandId/events/:id/readiness
func (h *Handler) SetMark(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	m, err := h.Service.SetMark(c.Request.Context(), actor, eventID, req, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetEventReadiness - GET /bands/:bandId/events/:id/readiness
func (h *Handler) GetEventReadiness(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	summary, err := h.Service.GetEventReadiness(c.Request.Context(), actor, eventID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
