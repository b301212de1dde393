package registrations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"registra/internal/shared/utils/response"
)

// Controller defines the registrations controller interface
type Controller interface {
	RegisterParticipation(c *gin.Context)
	GetParticipation(c *gin.Context)
	ListParticipations(c *gin.Context)
	DeleteParticipation(c *gin.Context)

	CreateActivity(c *gin.Context)
	ListActivities(c *gin.Context)

	CreateFaculty(c *gin.Context)
	ListFaculties(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new registrations controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) RegisterParticipation(c *gin.Context) {
	var req CreateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid registration payload", nil, err.Error())
		return
	}

	p, err := ctrl.service.RegisterParticipation(c.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Participation registered successfully", p, nil)
}

func (ctrl *controller) GetParticipation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid participation ID", nil, err.Error())
		return
	}

	p, err := ctrl.service.GetParticipation(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.RespondJSON(c, "error", http.StatusNotFound, "Participation not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Participation retrieved successfully", p, nil)
}

func (ctrl *controller) ListParticipations(c *gin.Context) {
	var query ListParticipationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid pagination parameters", nil, err.Error())
		return
	}

	participations, total, err := ctrl.service.ListParticipations(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Participations retrieved successfully", gin.H{
		"participations": participations,
		"total":          total,
		"page":           query.Page,
		"limit":          query.Limit,
	}, nil)
}

func (ctrl *controller) DeleteParticipation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid participation ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteParticipation(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.RespondJSON(c, "error", http.StatusNotFound, "Participation not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Participation deleted successfully", nil, nil)
}

func (ctrl *controller) CreateActivity(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid activity payload", nil, err.Error())
		return
	}

	a, err := ctrl.service.CreateActivity(c.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Activity created successfully", a, nil)
}

func (ctrl *controller) ListActivities(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "true"))

	activities, err := ctrl.service.ListActivities(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Activities retrieved successfully", activities, nil)
}

func (ctrl *controller) CreateFaculty(c *gin.Context) {
	var req CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid faculty payload", nil, err.Error())
		return
	}

	f, err := ctrl.service.CreateFaculty(c.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Faculty created successfully", f, nil)
}

func (ctrl *controller) ListFaculties(c *gin.Context) {
	faculties, err := ctrl.service.ListFaculties(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Faculties retrieved successfully", faculties, nil)
}
