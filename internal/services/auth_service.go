package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/constants"
	"github.com/takamaro111/construction-management-app/internal/identity"
	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/saga"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrUserNotFound       = errors.New("user not found")
	ErrRegistrationFailed = errors.New("failed to complete registration")
)

// AuthService handles company registration and authentication.
type AuthService struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	idp         identity.Provider
	log         *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(companyRepo repository.CompanyRepository, userRepo repository.UserRepository, idp identity.Provider, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		idp:         idp,
		log:         log,
	}
}

// RegisterInput represents a self-registration: a new company and its
// first administrator.
type RegisterInput struct {
	CompanyName  string
	CompanyEmail string
	UserName     string
	UserEmail    string
	Password     string
}

// Register creates the company, the auth account and the admin profile as a
// saga: a failure at any step removes whatever the earlier steps created.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	userEmail := strings.TrimSpace(input.UserEmail)

	if _, err := s.userRepo.FindByEmail(userEmail); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	company := &models.Company{
		Name:       strings.TrimSpace(input.CompanyName),
		Email:      strings.TrimSpace(input.CompanyEmail),
		IsApproved: false,
	}

	var account *models.AuthAccount
	var user *models.User

	wf := saga.New(s.log).
		AddStep(saga.Step{
			Name: "create company",
			Run: func() error {
				return s.companyRepo.Create(company)
			},
			Compensate: func() error {
				return s.companyRepo.Delete(company.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "create auth account",
			Run: func() error {
				var err error
				account, err = s.idp.CreateAccount(userEmail, input.Password, false)
				return err
			},
			Compensate: func() error {
				return s.idp.DeleteAccount(account.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "create admin profile",
			Run: func() error {
				user = &models.User{
					ID:        account.ID,
					CompanyID: company.ID,
					Email:     userEmail,
					Name:      strings.TrimSpace(input.UserName),
					Role:      models.RoleAdmin,
				}
				return s.userRepo.Create(user)
			},
		})

	if err := wf.Execute(); err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.log.Error("registration failed", "error", err)
		return nil, ErrRegistrationFailed
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user's profile.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	account, err := s.idp.VerifyPassword(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	user, err := s.userRepo.FindByID(account.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Auth account without a profile row; the pair invariant was
			// broken somewhere. Treat as a credentials failure.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the user's own display name. Email and role are
// not self-editable.
func (s *AuthService) UpdateProfile(userID, name string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(name)
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword overwrites the user's own credential. The new password is
// a permanent one, so any retained temporary password is cleared.
func (s *AuthService) ChangePassword(userID, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	if err := s.idp.SetPassword(userID, newPassword, false); err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// GetUser retrieves a user profile by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
