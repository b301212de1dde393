package analytics

import (
	"registra/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes registers the analytics endpoints. Reports are for
// secretarial/admin eyes only.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuth())
	analytics.Use(middleware.RequireAdmin())

	analytics.GET("/report", controller.GetInsightReport)
	analytics.GET("/forecast", controller.GetRevenueForecast) // ?periods=3
	analytics.GET("/bundle", controller.GetAggregateBundle)
}
