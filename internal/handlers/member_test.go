package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/constants"
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/email"
	"github.com/takamaro111/construction-management-app/internal/identity"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/services"
)

type memberTestEnv struct {
	db      *gorm.DB
	handler *MemberHandler
	service *services.MemberService
	company models.Company
	admin   models.User
	viewer  models.User
}

func setupMemberTestEnv(t *testing.T) memberTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.AuthAccount{},
		&models.User{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	company := models.Company{Name: "Genba Co", Email: "office@genba.example.com", IsApproved: true}
	require.NoError(t, db.Create(&company).Error)

	admin := models.User{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Email:     "admin@genba.example.com",
		Name:      "Admin",
		Role:      models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)

	viewer := models.User{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Email:     "viewer@genba.example.com",
		Name:      "Viewer",
		Role:      models.RoleViewer,
	}
	require.NoError(t, db.Create(&viewer).Error)

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	idp := identity.NewGormProvider(db)
	service := services.NewMemberService(userRepo, companyRepo, idp, &email.LogSender{}, "http://localhost:3000", nil)
	handler := NewMemberHandler(service)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return memberTestEnv{
		db:      db,
		handler: handler,
		service: service,
		company: company,
		admin:   admin,
		viewer:  viewer,
	}
}

// actAs seeds the request context the way RequireAuth and LoadCurrentUser
// would for an authenticated session.
func actAs(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func TestMemberHandler_Invite(t *testing.T) {
	env := setupMemberTestEnv(t)

	r := gin.New()
	r.POST("/api/members/invite", actAs(env.admin), middleware.RequireAdmin(), env.handler.Invite)

	payload := map[string]string{
		"email": "newhire@genba.example.com",
		"name":  "New Hire",
		"role":  "member",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/members/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, true, response["success"])
	require.Len(t, response["temp_password"], constants.TempPasswordLength)

	var user models.User
	require.NoError(t, env.db.First(&user, "email = ?", payload["email"]).Error)
	require.Equal(t, models.RoleViewer, user.Role)
}

func TestMemberHandler_Invite_NonAdminForbidden(t *testing.T) {
	env := setupMemberTestEnv(t)

	r := gin.New()
	r.POST("/api/members/invite", actAs(env.viewer), middleware.RequireAdmin(), env.handler.Invite)

	payload := map[string]string{
		"email": "newhire@genba.example.com",
		"name":  "New Hire",
		"role":  "member",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/members/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("email = ?", payload["email"]).Count(&count).Error)
	require.Zero(t, count)
}

func TestMemberHandler_Delete_SelfForbidden(t *testing.T) {
	env := setupMemberTestEnv(t)

	r := gin.New()
	r.DELETE("/api/members/:id", actAs(env.admin), middleware.RequireAdmin(), env.handler.Delete)

	payload := map[string]string{"email": env.admin.Email}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/members/"+env.admin.ID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMemberHandler_GetPassword(t *testing.T) {
	env := setupMemberTestEnv(t)

	invited, err := env.service.Invite(services.InviteInput{
		Email:     "recover@genba.example.com",
		Name:      "Recover",
		Role:      "member",
		CompanyID: env.company.ID,
		InvitedBy: env.admin.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/members/:id/password", actAs(env.admin), middleware.RequireAdmin(), env.handler.GetPassword)

	payload := map[string]string{"email": "recover@genba.example.com"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/members/"+invited.UserID+"/password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, invited.TempPassword, response["current_password"])
	require.Equal(t, true, response["is_temp_password"])
}

func TestMemberHandler_ListMembers(t *testing.T) {
	env := setupMemberTestEnv(t)

	r := gin.New()
	r.GET("/api/members", actAs(env.viewer), env.handler.ListMembers)

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []map[string]interface{} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 2)
}
