package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/reqctx"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// GetBandAuditLogs - GET /bands/:bandId/audit
func (h *Handler) GetBandAuditLogs(c *gin.Context) {
	bandID, _ := reqctx.BandIDFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	filter := Filter{
		BandID: &bandID,
		Action: c.Query("action"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	logs, err := h.Service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, httperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, logs)
}
