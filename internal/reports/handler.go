package reports

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

// ExportSchedule - GET /bands/:bandId/reports/schedule?format=csv|excel|pdf
func (h *Handler) ExportSchedule(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	from, to, err := event.ParseRangeQuery(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	payload, filename, contentType, err := h.Service.ExportSchedule(c.Request.Context(), actor, format, from, to, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, payload)
}
