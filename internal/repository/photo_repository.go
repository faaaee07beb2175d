package repository

import (
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormPhotoRepository is a GORM implementation of PhotoRepository
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &GormPhotoRepository{db: db}
}

func (r *GormPhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *GormPhotoRepository) FindByID(id, companyID string) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *GormPhotoRepository) List(companyID string, projectID *string) ([]models.Photo, error) {
	query := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Project").
		Preload("Uploader")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var photos []models.Photo
	if err := query.Order("created_at DESC").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *GormPhotoRepository) Delete(id, companyID string) error {
	result := r.db.Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).Delete(&models.Photo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
