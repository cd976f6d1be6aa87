package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bandmate-app/band-scheduling-backend/config"
	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/band"
	"github.com/bandmate-app/band-scheduling-backend/internal/calendar"
	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/invite"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
	"github.com/bandmate-app/band-scheduling-backend/internal/principal"
	"github.com/bandmate-app/band-scheduling-backend/internal/readiness"
	"github.com/bandmate-app/band-scheduling-backend/internal/reports"
	"github.com/bandmate-app/band-scheduling-backend/middleware"
)

// Setup wires repositories, services and handlers and registers every route.
func Setup(router *gin.Engine, cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	// Repositories & services
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)

	principalRepo := principal.NewRepository(db)
	principalSvc := principal.NewService(principalRepo)

	membershipRepo := membership.NewRepository(db)
	membershipSvc := membership.NewService(membershipRepo, auditSvc)

	bandRepo := band.NewRepository(db)
	bandSvc := band.NewService(bandRepo, membershipSvc, auditSvc)

	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, membershipSvc, bandSvc, auditSvc)

	calendarSvc := calendar.NewService(eventSvc, membershipSvc, bandSvc)

	var tokenStore invite.TokenStore
	if rdb != nil {
		tokenStore = invite.NewRedisStore(rdb)
	} else {
		tokenStore = invite.NewMemoryStore()
	}
	inviteSvc := invite.NewService(tokenStore, membershipSvc, auditSvc, time.Duration(cfg.InviteTTLHours)*time.Hour)

	readinessRepo := readiness.NewRepository(db)
	readinessSvc := readiness.NewService(readinessRepo, eventRepo, auditSvc)

	reportsSvc := reports.NewService(eventSvc, bandSvc, reports.NewScheduleExporter(), auditSvc)

	// Handlers
	auditHandler := auditlog.NewHandler(auditSvc)
	principalHandler := principal.NewHandler(principalSvc)
	membershipHandler := membership.NewHandler(membershipSvc)
	bandHandler := band.NewHandler(bandSvc)
	eventHandler := event.NewHandler(eventSvc)
	calendarHandler := calendar.NewHandler(calendarSvc)
	inviteHandler := invite.NewHandler(inviteSvc)
	readinessHandler := readiness.NewHandler(readinessSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg, principalSvc))

	// Profile & cross-band personal routes
	api.POST("/auth/bootstrap", principalHandler.Bootstrap)
	me := api.Group("/users/me")
	{
		me.GET("", principalHandler.GetMe)
		me.PATCH("", principalHandler.UpdateMe)
		me.GET("/memberships", membershipHandler.ListMyMemberships)
		me.POST("/unavailability", eventHandler.CreateUnavailability)
		me.GET("/unavailability", eventHandler.ListUnavailability)
		me.DELETE("/unavailability/:id", eventHandler.DeleteUnavailability)
	}

	api.POST("/bands", bandHandler.CreateBand)
	api.POST("/invites/accept", inviteHandler.Accept)

	// Band-scoped routes; the member guard resolves :bandId to a membership.
	bands := api.Group("/bands/:bandId")
	bands.Use(middleware.RequireBandMember(membershipSvc))
	{
		bands.GET("", bandHandler.GetBand)
		bands.PATCH("", middleware.RequireBandRole(membership.RoleOwner, membership.RoleAdmin), bandHandler.UpdateBand)
		bands.DELETE("", middleware.RequireBandRole(membership.RoleOwner), bandHandler.DeleteBand)

		bands.GET("/members", membershipHandler.ListBandMembers)
		bands.PATCH("/members/me", membershipHandler.UpdateMyIdentity)
		bands.PATCH("/members/:membershipId/role", middleware.RequireBandRole(membership.RoleOwner, membership.RoleAdmin), membershipHandler.ChangeRole)
		bands.DELETE("/members/:membershipId", membershipHandler.RemoveMember)

		bands.GET("/events", eventHandler.ListBandEvents)
		bands.POST("/events", eventHandler.CreateBandEvent)
		bands.PATCH("/events/:id", eventHandler.UpdateBandEvent)
		bands.DELETE("/events/:id", eventHandler.DeleteBandEvent)
		bands.POST("/events/check-conflicts", eventHandler.CheckConflicts)

		bands.PUT("/events/:id/readiness", readinessHandler.SetMark)
		bands.GET("/events/:id/readiness", readinessHandler.GetEventReadiness)

		bands.GET("/calendar", calendarHandler.GetUnifiedCalendar)
		bands.GET("/reports/schedule", reportsHandler.ExportSchedule)

		bands.POST("/invites", middleware.RequireBandRole(membership.RoleOwner, membership.RoleAdmin), inviteHandler.Issue)
		bands.DELETE("/invites/:token", middleware.RequireBandRole(membership.RoleOwner, membership.RoleAdmin), inviteHandler.Revoke)

		bands.GET("/audit", middleware.RequireBandRole(membership.RoleOwner, membership.RoleAdmin), auditHandler.GetBandAuditLogs)
	}
}
