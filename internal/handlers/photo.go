package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takamaro111/construction-management-app/internal/dto"
	apierrors "github.com/takamaro111/construction-management-app/internal/errors"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/services"
)

// PhotoHandler coordinates photo uploads and listings.
type PhotoHandler struct {
	attachmentService *services.AttachmentService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(attachmentService *services.AttachmentService) *PhotoHandler {
	return &PhotoHandler{
		attachmentService: attachmentService,
	}
}

// Upload stores a photo (multipart form: file, optional thumbnail, fields
// project_id and memo) and creates its metadata row.
func (h *PhotoHandler) Upload(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	projectID := c.PostForm("project_id")
	if projectID == "" {
		apierrors.BadRequest(c, "project_id is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	input := services.UploadPhotoInput{
		ProjectID:  projectID,
		CompanyID:  user.CompanyID,
		UploadedBy: user.ID,
		FileName:   fileHeader.Filename,
		FileSize:   fileHeader.Size,
		File:       file,
	}

	if memo := c.PostForm("memo"); memo != "" {
		input.Memo = &memo
	}

	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumb, err := thumbHeader.Open()
		if err != nil {
			apierrors.InternalError(c, "Failed to read thumbnail")
			return
		}
		defer thumb.Close()
		input.Thumbnail = thumb
	}

	photo, err := h.attachmentService.UploadPhoto(input)
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPhotoDTO(*photo))
}

// List returns the company's photos, optionally filtered by project.
func (h *PhotoHandler) List(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	var projectID *string
	if id := c.Query("project_id"); id != "" {
		projectID = &id
	}

	photos, err := h.attachmentService.ListPhotos(user.CompanyID, projectID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list photos")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": dto.ToPhotoDTOs(photos)})
}

// Delete removes a photo and its stored objects.
func (h *PhotoHandler) Delete(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	if err := h.attachmentService.DeletePhoto(c.Param("id"), user.CompanyID); err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

func respondAttachmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPhotoNotFound), errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUploadFailed):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
