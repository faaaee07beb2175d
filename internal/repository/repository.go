package repository

import (
	"time"

	"github.com/takamaro111/construction-management-app/internal/models"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(company *models.Company) error
	FindByID(id string) (*models.Company, error)
	Update(company *models.Company) error
	Delete(id string) error
}

// UserRepository defines the interface for member profile data access
type UserRepository interface {
	Create(user *models.User) error

	// FindByID finds a profile without tenant filtering. Only the
	// privileged member-lifecycle workflows use it.
	FindByID(id string) (*models.User, error)

	// FindByIDInCompany finds a profile scoped to a company; cross-tenant
	// IDs read as not found.
	FindByIDInCompany(id, companyID string) (*models.User, error)

	FindByEmail(email string) (*models.User, error)
	ListByCompany(companyID string) ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	CompanyID string
	Status    *models.ProjectStatus
	ManagerID *string
	Page      int
	PageSize  int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id, companyID string) (*models.Project, error)
	List(filter ProjectFilter) ([]models.Project, int64, error)
	Update(project *models.Project) error

	// UpdateStatus updates only the status column of one project.
	UpdateStatus(id, companyID string, status models.ProjectStatus) error

	Delete(id, companyID string) error
}

// PhotoRepository defines the interface for photo data access
type PhotoRepository interface {
	Create(photo *models.Photo) error
	FindByID(id, companyID string) (*models.Photo, error)
	List(companyID string, projectID *string) ([]models.Photo, error)
	Delete(id, companyID string) error
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id, companyID string) (*models.Document, error)
	List(companyID string, projectID *string) ([]models.Document, error)
	Delete(id, companyID string) error
}

// ReportFilter holds filtering options for listing reports
type ReportFilter struct {
	CompanyID string
	ProjectID *string
	Type      *models.ReportType
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id, companyID string) (*models.Report, error)
	List(filter ReportFilter) ([]models.Report, error)
	Update(report *models.Report) error
	Delete(id, companyID string) error
}

// ScheduleFilter holds filtering options for listing schedules
type ScheduleFilter struct {
	CompanyID  string
	ProjectID  *string
	AssignedTo *string
	From       *time.Time
	To         *time.Time
}

// ScheduleRepository defines the interface for schedule data access
type ScheduleRepository interface {
	Create(schedule *models.Schedule) error
	FindByID(id, companyID string) (*models.Schedule, error)
	List(filter ScheduleFilter) ([]models.Schedule, error)
	Update(schedule *models.Schedule) error
	Delete(id, companyID string) error
}

// DashboardCounts aggregates the entity totals shown on the dashboard.
type DashboardCounts struct {
	Projects       int64
	ActiveProjects int64
	Members        int64
	Photos         int64
	Documents      int64
	TodaySchedules int64
}

// DashboardRepository defines the interface for dashboard aggregation
type DashboardRepository interface {
	// Counts returns the company's totals; TodaySchedules counts
	// schedules whose start date falls on the given day.
	Counts(companyID string, day time.Time) (*DashboardCounts, error)
}

// ChatRepository defines the interface for chat and message data access
type ChatRepository interface {
	CreateChat(chat *models.Chat) error
	FindChatByID(id, companyID string) (*models.Chat, error)
	ListChats(companyID string) ([]models.Chat, error)
	CreateMessage(message *models.ChatMessage) error

	// ListMessages returns a chat's messages in creation order.
	ListMessages(chatID, companyID string) ([]models.ChatMessage, error)
}
