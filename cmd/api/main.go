package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/clipperdesk/barber-booking/internal/config"
	dbpkg "github.com/clipperdesk/barber-booking/internal/db"
	"github.com/clipperdesk/barber-booking/internal/middleware"
	"github.com/clipperdesk/barber-booking/internal/routes"
	"github.com/clipperdesk/barber-booking/internal/timezone"
)

func main() {

	cfg := config.Load()

	if !timezone.IsValid(cfg.Timezone) {
		log.Printf("invalid BUSINESS_TIMEZONE %q, using %s",
			cfg.Timezone, timezone.FallbackTimezone)
	}
	timezone.SetBusiness(cfg.Timezone)

	db := dbpkg.NewDB(cfg)

	// Redis é opcional: sem REDIS_ADDR o rate limit cai no Postgres.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
