// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"registra/internal/alerts"
	"registra/internal/analytics"
	"registra/internal/registrations"
	"registra/internal/shared/config"
	"registra/internal/shared/database"
	"registra/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher alerts.Publisher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher alerts.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupRegistrationRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "registra-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "registra-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupRegistrationRoutes configures the registration desk routes
func (r *Router) setupRegistrationRoutes(rg *gin.RouterGroup) {
	repo := registrations.NewRepository(r.db.GetPostgreSQL())
	service := registrations.NewService(repo)

	if r.db.Redis != nil {
		service.SetCacheService(cache.NewService(r.db.GetRedisClient()))
	}

	controller := registrations.NewController(service)

	registrations.SetupRegistrationRoutes(rg, controller)
}

// setupAnalyticsRoutes configures the insight and analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	repo := analytics.NewRepository(r.db.GetPostgreSQL())
	engine := analytics.NewEngine(r.engineConfig())
	service := analytics.NewService(repo, engine, r.fetchOptions())

	// Inject cache and alert dependencies
	if r.db.Redis != nil {
		service.SetCacheService(cache.NewService(r.db.GetRedisClient()))
	}
	if r.publisher != nil {
		service.SetAlertPublisher(r.publisher)
	}

	controller := analytics.NewController(service)
	analytics.SetupAnalyticsRoutes(rg, controller)
}

// engineConfig applies the operator-tunable thresholds on top of the defaults.
func (r *Router) engineConfig() analytics.EngineConfig {
	cfg := analytics.DefaultEngineConfig()
	cfg.OutlierMultiplier = r.config.Analytics.OutlierMultiplier
	cfg.UnderperformRatio = r.config.Analytics.UnderperformRatio
	cfg.LowRevenueThreshold = r.config.Analytics.LowRevenueThreshold
	return cfg
}

func (r *Router) fetchOptions() analytics.FetchOptions {
	return analytics.FetchOptions{
		DailyWindowDays:     r.config.Analytics.DailyWindowDays,
		MonthlyWindowMonths: r.config.Analytics.MonthlyWindowMonths,
		ProfitabilityLimit:  r.config.Analytics.ProfitabilityLimit,
		RecurrentLimit:      r.config.Analytics.RecurrentLimit,
		RawLimit:            r.config.Analytics.RawLimit,
		FallbackRawLimit:    r.config.Analytics.FallbackRawLimit,
	}
}
