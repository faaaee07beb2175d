package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/takamaro111/construction-management-app/internal/errors"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/services"
)

// ScheduleHandler coordinates schedule endpoints.
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// CreateSchedule creates a new schedule entry.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type CreateScheduleRequest struct {
		ProjectID   string    `json:"project_id" binding:"required"`
		AssignedTo  *string   `json:"assigned_to"`
		Title       string    `json:"title" binding:"required,max=255"`
		Description *string   `json:"description"`
		StartDate   time.Time `json:"start_date" binding:"required"`
		EndDate     time.Time `json:"end_date" binding:"required"`
		Status      string    `json:"status"`
		Priority    string    `json:"priority"`
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(services.CreateScheduleInput{
		ProjectID:   req.ProjectID,
		CompanyID:   user.CompanyID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.ScheduleStatus(req.Status),
		Priority:    models.SchedulePriority(req.Priority),
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// ListSchedules returns the company's schedules with optional filters.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	filter := repository.ScheduleFilter{CompanyID: user.CompanyID}
	if id := c.Query("project_id"); id != "" {
		filter.ProjectID = &id
	}
	if id := c.Query("assigned_to"); id != "" {
		filter.AssignedTo = &id
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = &parsed
		}
	}

	schedules, err := h.scheduleService.ListSchedules(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list schedules")
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// GetSchedule returns one schedule entry.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	schedule, err := h.scheduleService.GetSchedule(c.Param("id"), user.CompanyID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// UpdateSchedule edits a schedule entry.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type UpdateScheduleRequest struct {
		AssignedTo  *string    `json:"assigned_to"`
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateScheduleInput{
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		s := models.ScheduleStatus(*req.Status)
		input.Status = &s
	}
	if req.Priority != nil {
		p := models.SchedulePriority(*req.Priority)
		input.Priority = &p
	}

	schedule, err := h.scheduleService.UpdateSchedule(c.Param("id"), user.CompanyID, input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule removes a schedule entry.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	if err := h.scheduleService.DeleteSchedule(c.Param("id"), user.CompanyID); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

func respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrScheduleNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidDateRange), errors.Is(err, services.ErrInvalidSchedule):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
