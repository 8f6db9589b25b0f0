package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ordersnap/api/handler"
	"github.com/use-agent/ordersnap/api/middleware"
	"github.com/use-agent/ordersnap/config"
	"github.com/use-agent/ordersnap/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Scrape:  Auth (if keys configured) → RateLimit
//
// Health is intentionally outside auth so monitoring probes always work.
// The rate limiter doubles as the bound on concurrent browser sessions;
// the scrape core itself does not limit concurrency.
func NewRouter(sc *scraper.Scraper, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/health", handler.Health(startTime))

	protected := r.Group("")
	if len(cfg.Auth.APIKeys) > 0 {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.GET("/scrape", handler.Scrape(sc))

	return r
}
