package identity

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
)

// GormProvider stores auth accounts in the application database.
type GormProvider struct {
	db *gorm.DB
}

func NewGormProvider(db *gorm.DB) Provider {
	return &GormProvider{db: db}
}

func (p *GormProvider) CreateAccount(email, password string, temp bool) (*models.AuthAccount, error) {
	if _, err := p.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := &models.AuthAccount{
		Email:         email,
		PasswordHash:  string(hash),
		PasswordSetAt: &now,
	}
	if temp {
		account.TempPassword = &password
	}

	if err := p.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create auth account: %w", err)
	}
	return account, nil
}

func (p *GormProvider) DeleteAccount(id string) error {
	result := p.db.Delete(&models.AuthAccount{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (p *GormProvider) SetPassword(id, password string, temp bool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"password_hash":   string(hash),
		"password_set_at": &now,
	}
	if temp {
		updates["temp_password"] = password
	} else {
		updates["temp_password"] = nil
	}

	result := p.db.Model(&models.AuthAccount{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (p *GormProvider) FindByEmail(email string) (*models.AuthAccount, error) {
	var account models.AuthAccount
	if err := p.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (p *GormProvider) FindByID(id string) (*models.AuthAccount, error) {
	var account models.AuthAccount
	if err := p.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (p *GormProvider) VerifyPassword(email, password string) (*models.AuthAccount, error) {
	account, err := p.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
