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
	"github.com/takamaro111/construction-management-app/internal/utils"
)

// ProjectHandler coordinates project CRUD and the status board.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project for the caller's company.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type CreateProjectRequest struct {
		Name        string     `json:"name" binding:"required,max=255"`
		Description *string    `json:"description"`
		Status      string     `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Address     *string    `json:"address"`
		ManagerID   *string    `json:"manager_id"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		CompanyID:   user.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Address:     req.Address,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns the company's projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	params := utils.GetPaginationParams(c)

	filter := repository.ProjectFilter{
		CompanyID: user.CompanyID,
		Page:      params.Page,
		PageSize:  params.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := models.ProjectStatus(status)
		filter.Status = &s
	}

	projects, total, err := h.projectService.ListProjects(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetBoard returns the company's projects grouped into status lanes.
func (h *ProjectHandler) GetBoard(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	lanes, err := h.projectService.Board(user.CompanyID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load board")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lanes": lanes})
}

// GetProject returns one project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	project, err := h.projectService.GetProject(c.Param("id"), user.CompanyID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject edits a project's fields.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type UpdateProjectRequest struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Address     *string    `json:"address"`
		ManagerID   *string    `json:"manager_id"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Address:     req.Address,
		ManagerID:   req.ManagerID,
	}
	if req.Status != nil {
		s := models.ProjectStatus(*req.Status)
		input.Status = &s
	}

	project, err := h.projectService.UpdateProject(c.Param("id"), user.CompanyID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// MoveStatus moves a project between board lanes. Only the status field of
// the addressed project changes.
func (h *ProjectHandler) MoveStatus(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type MoveStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req MoveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.MoveStatus(c.Param("id"), user.CompanyID, models.ProjectStatus(req.Status)); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
		"status":  req.Status,
	})
}

// DeleteProject removes a project and its attached records.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	if err := h.projectService.DeleteProject(c.Param("id"), user.CompanyID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidProjectName), errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
