package registrations

import (
	"registra/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRegistrationRoutes registers the secretarial CRUD endpoints. All of
// them sit behind JWT auth: the registration desk is staff-only.
func SetupRegistrationRoutes(rg *gin.RouterGroup, controller Controller) {
	participations := rg.Group("/participations")
	participations.Use(middleware.JWTAuth())
	{
		participations.POST("", controller.RegisterParticipation)
		participations.GET("", controller.ListParticipations)
		participations.GET("/:id", controller.GetParticipation)
		participations.DELETE("/:id", controller.DeleteParticipation)
	}

	activities := rg.Group("/activities")
	activities.Use(middleware.JWTAuth())
	{
		activities.GET("", controller.ListActivities) // ?active=true
		activities.POST("", controller.CreateActivity)
	}

	faculties := rg.Group("/faculties")
	faculties.Use(middleware.JWTAuth())
	{
		faculties.GET("", controller.ListFaculties)
		faculties.POST("", controller.CreateFaculty)
	}
}
