package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takamaro111/construction-management-app/internal/dto"
	apierrors "github.com/takamaro111/construction-management-app/internal/errors"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/services"
)

// DocumentHandler coordinates document uploads and listings.
type DocumentHandler struct {
	attachmentService *services.AttachmentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(attachmentService *services.AttachmentService) *DocumentHandler {
	return &DocumentHandler{
		attachmentService: attachmentService,
	}
}

// Upload stores a document (multipart form: file, fields project_id and
// description) and creates its metadata row.
func (h *DocumentHandler) Upload(c *gin.Context) {
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

	input := services.UploadDocumentInput{
		ProjectID:  projectID,
		CompanyID:  user.CompanyID,
		UploadedBy: user.ID,
		FileName:   fileHeader.Filename,
		FileSize:   fileHeader.Size,
		FileType:   fileHeader.Header.Get("Content-Type"),
		File:       file,
	}

	if description := c.PostForm("description"); description != "" {
		input.Description = &description
	}

	document, err := h.attachmentService.UploadDocument(input)
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentDTO(*document))
}

// List returns the company's documents, optionally filtered by project.
func (h *DocumentHandler) List(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	var projectID *string
	if id := c.Query("project_id"); id != "" {
		projectID = &id
	}

	documents, err := h.attachmentService.ListDocuments(user.CompanyID, projectID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": dto.ToDocumentDTOs(documents)})
}

// Delete removes a document and its stored object.
func (h *DocumentHandler) Delete(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	if err := h.attachmentService.DeleteDocument(c.Param("id"), user.CompanyID); err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
