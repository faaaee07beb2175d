package repository

import (
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *GormProjectRepository) FindByID(id, companyID string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Manager").
		Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{}).Scopes(database.TenantScope(filter.CompanyID))

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ManagerID != nil {
		query = query.Where("manager_id = ?", *filter.ManagerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Manager").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *GormProjectRepository) UpdateStatus(id, companyID string, status models.ProjectStatus) error {
	result := r.db.Model(&models.Project{}).
		Scopes(database.TenantScope(companyID)).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProjectRepository) Delete(id, companyID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		scoped := func(model interface{}) *gorm.DB {
			return tx.Scopes(database.TenantScope(companyID)).Where("project_id = ?", id)
		}

		if err := scoped(&models.Photo{}).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := scoped(&models.Document{}).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := scoped(&models.Report{}).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := scoped(&models.Schedule{}).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		var chats []models.Chat
		if err := tx.Scopes(database.TenantScope(companyID)).
			Where("project_id = ?", id).Find(&chats).Error; err != nil {
			return err
		}
		for _, chat := range chats {
			if err := tx.Where("chat_id = ?", chat.ID).Delete(&models.ChatMessage{}).Error; err != nil {
				return err
			}
		}
		if err := scoped(&models.Chat{}).Delete(&models.Chat{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(database.TenantScope(companyID)).
			Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
