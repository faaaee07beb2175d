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
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrInvalidSchedule   = errors.New("schedule title cannot be empty")
)

// ScheduleService provides business logic for project schedules.
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(scheduleRepo repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

// CreateScheduleInput represents parameters to create a schedule entry.
type CreateScheduleInput struct {
	ProjectID   string
	CompanyID   string
	AssignedTo  *string
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Status      models.ScheduleStatus
	Priority    models.SchedulePriority
}

// CreateSchedule creates a new schedule entry.
func (s *ScheduleService) CreateSchedule(input CreateScheduleInput) (*models.Schedule, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidSchedule
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	status := input.Status
	if status == "" {
		status = models.ScheduleStatusPlanned
	}
	priority := input.Priority
	if priority == "" {
		priority = models.SchedulePriorityMedium
	}

	schedule := &models.Schedule{
		ProjectID:   input.ProjectID,
		CompanyID:   input.CompanyID,
		AssignedTo:  input.AssignedTo,
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		Priority:    priority,
	}

	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

// GetSchedule returns one schedule entry, tenant-scoped.
func (s *ScheduleService) GetSchedule(id, companyID string) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.FindByID(id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return schedule, nil
}

// ListSchedules returns the company's schedules with optional filters.
func (s *ScheduleService) ListSchedules(filter repository.ScheduleFilter) ([]models.Schedule, error) {
	schedules, err := s.scheduleRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// UpdateScheduleInput represents an edit of a schedule entry.
type UpdateScheduleInput struct {
	AssignedTo  *string
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *models.ScheduleStatus
	Priority    *models.SchedulePriority
}

// UpdateSchedule applies the provided fields to a schedule entry.
func (s *ScheduleService) UpdateSchedule(id, companyID string, input UpdateScheduleInput) (*models.Schedule, error) {
	schedule, err := s.GetSchedule(id, companyID)
	if err != nil {
		return nil, err
	}

	if input.AssignedTo != nil {
		schedule.AssignedTo = input.AssignedTo
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidSchedule
		}
		schedule.Title = *input.Title
	}
	if input.Description != nil {
		schedule.Description = input.Description
	}
	if input.StartDate != nil {
		schedule.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		schedule.EndDate = *input.EndDate
	}
	if schedule.EndDate.Before(schedule.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.Status != nil {
		schedule.Status = *input.Status
	}
	if input.Priority != nil {
		schedule.Priority = *input.Priority
	}

	if err := s.scheduleRepo.Update(schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return schedule, nil
}

// DeleteSchedule removes a schedule entry.
func (s *ScheduleService) DeleteSchedule(id, companyID string) error {
	if err := s.scheduleRepo.Delete(id, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
