package principal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// GetMe - GET /users/me
func (h *Handler) GetMe(c *gin.Context) {
	p, ok := FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMe - PATCH /users/me
func (h *Handler) UpdateMe(c *gin.Context) {
	p, ok := FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	updated, err := h.Service.UpdateProfile(c.Request.Context(), p.ID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Bootstrap - POST /auth/bootstrap
// The principal row is already upserted by the auth middleware; this endpoint
// just returns it so clients have an explicit first-login hook.
func (h *Handler) Bootstrap(c *gin.Context) {
	p, ok := FromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}
	c.JSON(http.StatusOK, p)
}
