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

// ReportHandler coordinates daily and monthly report endpoints.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CreateReport creates a new report.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type CreateReportRequest struct {
		ProjectID    string    `json:"project_id" binding:"required"`
		Type         string    `json:"type" binding:"required"`
		Title        string    `json:"title" binding:"required,max=255"`
		Content      string    `json:"content"`
		ReportDate   time.Time `json:"report_date" binding:"required"`
		Weather      *string   `json:"weather"`
		Temperature  *string   `json:"temperature"`
		WorkProgress *int      `json:"work_progress"`
		Issues       *string   `json:"issues"`
		NextActions  *string   `json:"next_actions"`
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.CreateReport(services.CreateReportInput{
		ProjectID:    req.ProjectID,
		CompanyID:    user.CompanyID,
		ReportedBy:   user.ID,
		Type:         models.ReportType(req.Type),
		Title:        req.Title,
		Content:      req.Content,
		ReportDate:   req.ReportDate,
		Weather:      req.Weather,
		Temperature:  req.Temperature,
		WorkProgress: req.WorkProgress,
		Issues:       req.Issues,
		NextActions:  req.NextActions,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListReports returns the company's reports with optional filters.
func (h *ReportHandler) ListReports(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	filter := repository.ReportFilter{CompanyID: user.CompanyID}
	if id := c.Query("project_id"); id != "" {
		filter.ProjectID = &id
	}
	if t := c.Query("type"); t != "" {
		reportType := models.ReportType(t)
		filter.Type = &reportType
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &parsed
		}
	}

	reports, err := h.reportService.ListReports(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// GetReport returns one report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	report, err := h.reportService.GetReport(c.Param("id"), user.CompanyID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateReport edits a report's fields.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type UpdateReportRequest struct {
		Title        *string    `json:"title"`
		Content      *string    `json:"content"`
		ReportDate   *time.Time `json:"report_date"`
		Weather      *string    `json:"weather"`
		Temperature  *string    `json:"temperature"`
		WorkProgress *int       `json:"work_progress"`
		Issues       *string    `json:"issues"`
		NextActions  *string    `json:"next_actions"`
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.UpdateReport(c.Param("id"), user.CompanyID, services.UpdateReportInput{
		Title:        req.Title,
		Content:      req.Content,
		ReportDate:   req.ReportDate,
		Weather:      req.Weather,
		Temperature:  req.Temperature,
		WorkProgress: req.WorkProgress,
		Issues:       req.Issues,
		NextActions:  req.NextActions,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeleteReport removes a report.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	if err := h.reportService.DeleteReport(c.Param("id"), user.CompanyID); err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidReportType), errors.Is(err, services.ErrInvalidProgress):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
