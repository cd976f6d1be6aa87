package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bandmate-app/band-scheduling-backend/config"
	"github.com/bandmate-app/band-scheduling-backend/database"
	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/band"
	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
	"github.com/bandmate-app/band-scheduling-backend/internal/principal"
	"github.com/bandmate-app/band-scheduling-backend/internal/readiness"
	"github.com/bandmate-app/band-scheduling-backend/middleware"
	"github.com/bandmate-app/band-scheduling-backend/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Redis backs the invite token store; without it invites fall back to a
	// process-local store.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	} else {
		log.Println("REDIS_ADDR not set, using in-memory invite store")
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&principal.Principal{},
		&band.Band{},
		&membership.Membership{},
		&event.Event{},
		&readiness.Mark{},
	); err != nil {
		log.Fatalf("DB AutoMigrate failed: %v", err)
	}
	log.Println("Database migrations completed")

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.AuditMiddleware())
	router.Use(middleware.RateLimiter())

	routes.Setup(router, cfg, db, rdb)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
