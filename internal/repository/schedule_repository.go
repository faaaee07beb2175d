package repository

import (
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) Create(schedule *models.Schedule) error {
	return r.db.Create(schedule).Error
}

func (r *GormScheduleRepository) FindByID(id, companyID string) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Assignee").
		Where("id = ?", id).First(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *GormScheduleRepository) List(filter ScheduleFilter) ([]models.Schedule, error) {
	query := r.db.Scopes(database.TenantScope(filter.CompanyID)).
		Preload("Project").
		Preload("Assignee")

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.From != nil {
		query = query.Where("end_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_date < ?", *filter.To)
	}

	var schedules []models.Schedule
	if err := query.Order("start_date ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *GormScheduleRepository) Update(schedule *models.Schedule) error {
	return r.db.Save(schedule).Error
}

func (r *GormScheduleRepository) Delete(id, companyID string) error {
	result := r.db.Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).Delete(&models.Schedule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
