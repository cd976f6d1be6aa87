package calendar

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GetUnifiedCalendar - GET /bands/:bandId/calendar
func (h *Handler) GetUnifiedCalendar(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	from, to, err := event.ParseRangeQuery(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	view, err := h.Service.GetUnifiedCalendar(c.Request.Context(), actor, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
