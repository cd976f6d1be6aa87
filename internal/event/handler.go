package event

import (
	"net/http"
	"strconv"
	"time"

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

// ParseRangeQuery reads optional startDate/endDate query parameters shared by
// the listing, calendar and report endpoints.
func ParseRangeQuery(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("startDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, httperr.Validation("endDate precedes startDate")
	}
	return from, to, nil
}

// ListBandEvents - GET /bands/:bandId/events
func (h *Handler) ListBandEvents(c *gin.Context) {
	bandID, _ := middleware.BandIDFromContext(c)

	from, to, err := ParseRangeQuery(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	events, err := h.Service.ListBandEvents(c.Request.Context(), bandID, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateBandEvent - POST /bands/:bandId/events
func (h *Handler) CreateBandEvent(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	e, err := h.Service.CreateBandEvent(c.Request.Context(), actor, req, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// UpdateBandEvent - PATCH /bands/:bandId/events/:id
func (h *Handler) UpdateBandEvent(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.Validation("invalid event id"))
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	e, err := h.Service.UpdateBandEvent(c.Request.Context(), actor, uint(id), req, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteBandEvent - DELETE /bands/:bandId/events/:id
func (h *Handler) DeleteBandEvent(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.Validation("invalid event id"))
		return
	}

	if err := h.Service.DeleteBandEvent(c.Request.Context(), actor, uint(id), middleware.GetIPFromContext(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// CheckConflicts - POST /bands/:bandId/events/check-conflicts
func (h *Handler) CheckConflicts(c *gin.Context) {
	actor, ok := middleware.MembershipFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("membership missing from context"))
		return
	}

	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	report, err := h.Service.CheckConflicts(c.Request.Context(), actor, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CreateUnavailability - POST /users/me/unavailability
func (h *Handler) CreateUnavailability(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	var req UnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("invalid input: "+err.Error()))
		return
	}

	e, err := h.Service.CreatePersonalEvent(c.Request.Context(), p.ID, req, middleware.GetIPFromContext(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ListUnavailability - GET /users/me/unavailability
func (h *Handler) ListUnavailability(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	from, to, err := ParseRangeQuery(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	events, err := h.Service.ListPersonalEvents(c.Request.Context(), p.ID, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// DeleteUnavailability - DELETE /users/me/unavailability/:id
func (h *Handler) DeleteUnavailability(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		httperr.Respond(c, httperr.Unauthenticated("unauthenticated"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.Validation("invalid event id"))
		return
	}

	if err := h.Service.DeletePersonalEvent(c.Request.Context(), p.ID, uint(id), middleware.GetIPFromContext(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unavailability deleted"})
}
