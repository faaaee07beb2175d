package repository

import (
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

func (r *GormDocumentRepository) FindByID(id, companyID string) (*models.Document, error) {
	var document models.Document
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *GormDocumentRepository) List(companyID string, projectID *string) ([]models.Document, error) {
	query := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Project").
		Preload("Uploader")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *GormDocumentRepository) Delete(id, companyID string) error {
	result := r.db.Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
