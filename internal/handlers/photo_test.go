package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/services"
	"github.com/takamaro111/construction-management-app/internal/storage"
)

type photoTestEnv struct {
	handler  *PhotoHandler
	uploader models.User
}

func setupPhotoTestEnv(t *testing.T) photoTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Project{},
		&models.Photo{},
		&models.Document{},
	)
	require.NoError(t, err)

	company := models.Company{Name: "Genba Co", Email: "office@genba.example.com"}
	require.NoError(t, db.Create(&company).Error)

	uploader := models.User{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Email:     "uploader@genba.example.com",
		Name:      "Uploader",
		Role:      models.RoleManager,
	}
	require.NoError(t, db.Create(&uploader).Error)

	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	service := services.NewAttachmentService(
		repository.NewPhotoRepository(db),
		repository.NewDocumentRepository(db),
		store,
		nil,
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return photoTestEnv{handler: NewPhotoHandler(service), uploader: uploader}
}

func uploadPhotoRequest(t *testing.T, projectID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("project_id", projectID))
	require.NoError(t, writer.WriteField("memo", "foundation work"))
	part, err := writer.CreateFormFile("file", "site.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/photos", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestPhotoHandler_Upload_ResponseShape(t *testing.T) {
	env := setupPhotoTestEnv(t)

	r := gin.New()
	r.POST("/api/photos", actAs(env.uploader), env.handler.Upload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadPhotoRequest(t, "project-1"))

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response["id"])
	require.Equal(t, "project-1", response["project_id"])
	require.Equal(t, env.uploader.ID, response["uploaded_by"])
	require.Equal(t, "site.jpg", response["file_name"])
	require.Equal(t, "foundation work", response["memo"])

	// The response is the public shape, not the storage model with its
	// preloadable relations.
	require.NotContains(t, response, "project")
	require.NotContains(t, response, "uploader")
	require.NotContains(t, response, "company_id")
}

func TestPhotoHandler_List_ResponseShape(t *testing.T) {
	env := setupPhotoTestEnv(t)

	r := gin.New()
	r.POST("/api/photos", actAs(env.uploader), env.handler.Upload)
	r.GET("/api/photos", actAs(env.uploader), env.handler.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadPhotoRequest(t, "project-1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/photos", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Photos []map[string]interface{} `json:"photos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Photos, 1)
	require.Equal(t, "site.jpg", response.Photos[0]["file_name"])
	require.NotContains(t, response.Photos[0], "project")
	require.NotContains(t, response.Photos[0], "uploader")
}
