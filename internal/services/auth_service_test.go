package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/identity"
	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
)

type authTestEnv struct {
	db          *gorm.DB
	authService *AuthService
	idp         identity.Provider
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.AuthAccount{},
		&models.User{},
	)
	require.NoError(t, err)

	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	idp := identity.NewGormProvider(db)
	authService := NewAuthService(companyRepo, userRepo, idp, nil)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		authService: authService,
		idp:         idp,
	}
}

func TestAuthService_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(RegisterInput{
		CompanyName:  "Yamada Construction",
		CompanyEmail: "office@yamada.example.com",
		UserName:     "Taro Yamada",
		UserEmail:    "taro@yamada.example.com",
		Password:     "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)

	// The auth account and the profile row exist as a pair sharing one ID.
	account, err := env.idp.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, account.Email)

	var company models.Company
	require.NoError(t, env.db.First(&company, "id = ?", user.CompanyID).Error)
	require.Equal(t, "Yamada Construction", company.Name)
	require.False(t, company.IsApproved)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(RegisterInput{
		CompanyName:  "Short Co",
		CompanyEmail: "office@short.example.com",
		UserName:     "Short",
		UserEmail:    "short@short.example.com",
		Password:     "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Register_RollsBackCompanyOnAccountFailure(t *testing.T) {
	env := setupAuthTestEnv(t)

	// An auth account without a profile row: the profile-table check passes
	// and the credential store rejects the duplicate, after the company row
	// was already created.
	_, err := env.idp.CreateAccount("taken@example.com", "supersecret", false)
	require.NoError(t, err)

	_, err = env.authService.Register(RegisterInput{
		CompanyName:  "Rollback Co",
		CompanyEmail: "office@rollback.example.com",
		UserName:     "Roll Back",
		UserEmail:    "taken@example.com",
		Password:     "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, env.db.Model(&models.Company{}).Count(&count).Error)
	require.Zero(t, count, "company created before the failing step must be compensated")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	input := RegisterInput{
		CompanyName:  "First Co",
		CompanyEmail: "office@first.example.com",
		UserName:     "First",
		UserEmail:    "dup@example.com",
		Password:     "supersecret",
	}
	_, err := env.authService.Register(input)
	require.NoError(t, err)

	input.CompanyName = "Second Co"
	_, err = env.authService.Register(input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := setupAuthTestEnv(t)

	registered, err := env.authService.Register(RegisterInput{
		CompanyName:  "Profile Co",
		CompanyEmail: "office@profile.example.com",
		UserName:     "Old Name",
		UserEmail:    "profile@example.com",
		Password:     "supersecret",
	})
	require.NoError(t, err)

	updated, err := env.authService.UpdateProfile(registered.ID, "  New Name  ")
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", registered.ID).Error)
	require.Equal(t, "New Name", stored.Name)
	require.Equal(t, registered.Email, stored.Email, "email is not self-editable")
	require.Equal(t, registered.Role, stored.Role, "role is not self-editable")

	_, err = env.authService.UpdateProfile("missing-id", "Anyone")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	registered, err := env.authService.Register(RegisterInput{
		CompanyName:  "Password Co",
		CompanyEmail: "office@password.example.com",
		UserName:     "Pass User",
		UserEmail:    "pass@example.com",
		Password:     "supersecret",
	})
	require.NoError(t, err)

	require.ErrorIs(t, env.authService.ChangePassword(registered.ID, "short"), ErrPasswordTooShort)

	require.NoError(t, env.authService.ChangePassword(registered.ID, "brandnewsecret"))

	_, err = env.authService.Login(LoginInput{Email: "pass@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := env.authService.Login(LoginInput{Email: "pass@example.com", Password: "brandnewsecret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestAuthService_ChangePassword_ClearsTempPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	account, err := env.idp.CreateAccount("temp@example.com", "temporary123", true)
	require.NoError(t, err)
	require.NotNil(t, account.TempPassword)

	require.NoError(t, env.authService.ChangePassword(account.ID, "chosenbyuser1"))

	stored, err := env.idp.FindByID(account.ID)
	require.NoError(t, err)
	require.Nil(t, stored.TempPassword, "a self-chosen password must not be retained in plaintext")
}

func TestAuthService_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	registered, err := env.authService.Register(RegisterInput{
		CompanyName:  "Login Co",
		CompanyEmail: "office@login.example.com",
		UserName:     "Login User",
		UserEmail:    "login@example.com",
		Password:     "supersecret",
	})
	require.NoError(t, err)

	user, err := env.authService.Login(LoginInput{
		Email:    "login@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = env.authService.Login(LoginInput{
		Email:    "login@example.com",
		Password: "wrongpassword",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.authService.Login(LoginInput{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
