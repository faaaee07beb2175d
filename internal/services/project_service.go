package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name cannot be empty")
	ErrInvalidStatus      = errors.New("unknown project status")
)

// ProjectService provides business logic for project operations. Every
// operation is scoped to the acting user's company.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	CompanyID   string
	Name        string
	Description *string
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Address     *string
	ManagerID   *string
}

// CreateProject creates a new project for the company.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusPreparing
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	project := &models.Project{
		CompanyID:   input.CompanyID,
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Address:     input.Address,
		ManagerID:   input.ManagerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns one project, tenant-scoped.
func (s *ProjectService) GetProject(id, companyID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects returns the company's projects with optional filters.
func (s *ProjectService) ListProjects(filter repository.ProjectFilter) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Board groups the company's projects into the four status lanes.
func (s *ProjectService) Board(companyID string) (map[models.ProjectStatus][]models.Project, error) {
	projects, _, err := s.projectRepo.List(repository.ProjectFilter{CompanyID: companyID})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	lanes := make(map[models.ProjectStatus][]models.Project, len(models.ProjectStatuses))
	for _, status := range models.ProjectStatuses {
		lanes[status] = []models.Project{}
	}
	for _, p := range projects {
		lanes[p.Status] = append(lanes[p.Status], p)
	}
	return lanes, nil
}

// UpdateProjectInput represents an edit of a project's fields.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Address     *string
	ManagerID   *string
}

// UpdateProject applies the provided fields to a project.
func (s *ProjectService) UpdateProject(id, companyID string, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(id, companyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.Address != nil {
		project.Address = input.Address
	}
	if input.ManagerID != nil {
		project.ManagerID = input.ManagerID
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// MoveStatus updates only the status field of one project. Any status may
// move to any other status; no transition graph is enforced.
func (s *ProjectService) MoveStatus(id, companyID string, status models.ProjectStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.projectRepo.UpdateStatus(id, companyID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return nil
}

// DeleteProject removes a project and its attached records.
func (s *ProjectService) DeleteProject(id, companyID string) error {
	if err := s.projectRepo.Delete(id, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
