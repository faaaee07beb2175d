package repository

import (
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *GormReportRepository) FindByID(id, companyID string) (*models.Report, error) {
	var report models.Report
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Author").
		Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *GormReportRepository) List(filter ReportFilter) ([]models.Report, error) {
	query := r.db.Scopes(database.TenantScope(filter.CompanyID)).
		Preload("Project").
		Preload("Author")

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.DateFrom != nil {
		query = query.Where("report_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("report_date < ?", *filter.DateTo)
	}

	var reports []models.Report
	if err := query.Order("report_date DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *GormReportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *GormReportRepository) Delete(id, companyID string) error {
	result := r.db.Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
