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
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReportType = errors.New("report type must be daily or monthly")
	ErrInvalidProgress   = errors.New("work progress must be between 0 and 100")
)

// ReportService provides business logic for daily and monthly site reports.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// CreateReportInput represents parameters to create a report.
type CreateReportInput struct {
	ProjectID    string
	CompanyID    string
	ReportedBy   string
	Type         models.ReportType
	Title        string
	Content      string
	ReportDate   time.Time
	Weather      *string
	Temperature  *string
	WorkProgress *int
	Issues       *string
	NextActions  *string
}

func validateReport(reportType models.ReportType, title string, progress *int) error {
	if reportType != models.ReportTypeDaily && reportType != models.ReportTypeMonthly {
		return ErrInvalidReportType
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("report title cannot be empty")
	}
	if progress != nil && (*progress < 0 || *progress > 100) {
		return ErrInvalidProgress
	}
	return nil
}

// CreateReport creates a new report.
func (s *ReportService) CreateReport(input CreateReportInput) (*models.Report, error) {
	if err := validateReport(input.Type, input.Title, input.WorkProgress); err != nil {
		return nil, err
	}

	report := &models.Report{
		ProjectID:    input.ProjectID,
		CompanyID:    input.CompanyID,
		ReportedBy:   input.ReportedBy,
		Type:         input.Type,
		Title:        input.Title,
		Content:      input.Content,
		ReportDate:   input.ReportDate,
		Weather:      input.Weather,
		Temperature:  input.Temperature,
		WorkProgress: input.WorkProgress,
		Issues:       input.Issues,
		NextActions:  input.NextActions,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// GetReport returns one report, tenant-scoped.
func (s *ReportService) GetReport(id, companyID string) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// ListReports returns the company's reports with optional filters.
func (s *ReportService) ListReports(filter repository.ReportFilter) ([]models.Report, error) {
	reports, err := s.reportRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// UpdateReportInput represents an edit of a report.
type UpdateReportInput struct {
	Title        *string
	Content      *string
	ReportDate   *time.Time
	Weather      *string
	Temperature  *string
	WorkProgress *int
	Issues       *string
	NextActions  *string
}

// UpdateReport applies the provided fields to a report.
func (s *ReportService) UpdateReport(id, companyID string, input UpdateReportInput) (*models.Report, error) {
	report, err := s.GetReport(id, companyID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		report.Title = *input.Title
	}
	if input.Content != nil {
		report.Content = *input.Content
	}
	if input.ReportDate != nil {
		report.ReportDate = *input.ReportDate
	}
	if input.Weather != nil {
		report.Weather = input.Weather
	}
	if input.Temperature != nil {
		report.Temperature = input.Temperature
	}
	if input.WorkProgress != nil {
		report.WorkProgress = input.WorkProgress
	}
	if input.Issues != nil {
		report.Issues = input.Issues
	}
	if input.NextActions != nil {
		report.NextActions = input.NextActions
	}

	if err := validateReport(report.Type, report.Title, report.WorkProgress); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

// DeleteReport removes a report.
func (s *ReportService) DeleteReport(id, companyID string) error {
	if err := s.reportRepo.Delete(id, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
