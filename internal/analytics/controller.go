package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"registra/internal/shared/utils/response"
)

// Controller defines the analytics controller interface
type Controller interface {
	GetInsightReport(c *gin.Context)
	GetRevenueForecast(c *gin.Context)
	GetAggregateBundle(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetInsightReport(c *gin.Context) {
	report, err := ctrl.service.GetInsightReport(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Insight report generated successfully", report, nil)
}

func (ctrl *controller) GetRevenueForecast(c *gin.Context) {
	periodsStr := c.DefaultQuery("periods", "3")
	periods, err := strconv.Atoi(periodsStr)
	if err != nil || periods <= 0 {
		periods = 3
	}

	forecast, err := ctrl.service.GetRevenueForecast(c.Request.Context(), periods)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Revenue forecast generated successfully", forecast, nil)
}

func (ctrl *controller) GetAggregateBundle(c *gin.Context) {
	bundle, err := ctrl.service.GetAggregateBundle(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Aggregate bundle retrieved successfully", bundle, nil)
}
