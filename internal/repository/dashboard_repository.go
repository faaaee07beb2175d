package repository

import (
	"time"

	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormDashboardRepository is a GORM implementation of DashboardRepository
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) Counts(companyID string, day time.Time) (*DashboardCounts, error) {
	counts := &DashboardCounts{}

	scoped := func(model interface{}) *gorm.DB {
		return r.db.Model(model).Scopes(database.TenantScope(companyID))
	}

	if err := scoped(&models.Project{}).Count(&counts.Projects).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.Project{}).
		Where("status = ?", models.ProjectStatusInProgress).
		Count(&counts.ActiveProjects).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.User{}).Count(&counts.Members).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.Photo{}).Count(&counts.Photos).Error; err != nil {
		return nil, err
	}
	if err := scoped(&models.Document{}).Count(&counts.Documents).Error; err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	if err := scoped(&models.Schedule{}).
		Where("start_date >= ? AND start_date < ?", dayStart, dayEnd).
		Count(&counts.TodaySchedules).Error; err != nil {
		return nil, err
	}

	return counts, nil
}
