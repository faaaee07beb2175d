package repository

import (
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *GormCompanyRepository) FindByID(id string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

func (r *GormCompanyRepository) Delete(id string) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}
