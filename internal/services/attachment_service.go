package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/repository"
	"github.com/takamaro111/construction-management-app/internal/storage"
)

var (
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrUploadFailed     = errors.New("failed to store uploaded file")
)

// AttachmentService handles photo and document uploads. Files go to object
// storage under the uploader's key prefix; metadata rows are tenant-scoped.
type AttachmentService struct {
	photoRepo    repository.PhotoRepository
	documentRepo repository.DocumentRepository
	store        storage.Storage
	log          *slog.Logger
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(photoRepo repository.PhotoRepository, documentRepo repository.DocumentRepository, store storage.Storage, log *slog.Logger) *AttachmentService {
	if log == nil {
		log = slog.Default()
	}
	return &AttachmentService{
		photoRepo:    photoRepo,
		documentRepo: documentRepo,
		store:        store,
		log:          log,
	}
}

// UploadPhotoInput describes a photo upload. Thumbnail is optional; clients
// that compress images send both renditions.
type UploadPhotoInput struct {
	ProjectID  string
	CompanyID  string
	UploadedBy string
	FileName   string
	FileSize   int64
	Memo       *string
	File       io.Reader
	Thumbnail  io.Reader
}

// UploadPhoto stores the image (and thumbnail, when present) and inserts
// the photo row. Stored objects are removed again if the insert fails.
func (s *AttachmentService) UploadPhoto(input UploadPhotoInput) (*models.Photo, error) {
	ext := strings.TrimPrefix(filepath.Ext(input.FileName), ".")
	key := storage.NewObjectKey(input.UploadedBy, ext)

	fileURL, err := s.store.Save(key, input.File)
	if err != nil {
		s.log.Error("photo upload failed", "key", key, "error", err)
		return nil, ErrUploadFailed
	}

	var thumbnailURL *string
	var thumbKey string
	if input.Thumbnail != nil {
		thumbKey = storage.ThumbnailKey(key)
		url, err := s.store.Save(thumbKey, input.Thumbnail)
		if err != nil {
			s.store.Remove(key)
			s.log.Error("thumbnail upload failed", "key", thumbKey, "error", err)
			return nil, ErrUploadFailed
		}
		thumbnailURL = &url
	}

	photo := &models.Photo{
		ProjectID:    input.ProjectID,
		CompanyID:    input.CompanyID,
		UploadedBy:   input.UploadedBy,
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURL,
		FileName:     input.FileName,
		FileSize:     input.FileSize,
		Memo:         input.Memo,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		keys := []string{key}
		if thumbKey != "" {
			keys = append(keys, thumbKey)
		}
		s.store.Remove(keys...)
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	return photo, nil
}

// ListPhotos returns the company's photos, optionally for one project.
func (s *AttachmentService) ListPhotos(companyID string, projectID *string) ([]models.Photo, error) {
	photos, err := s.photoRepo.List(companyID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// DeletePhoto removes the photo row, then its stored objects best-effort.
func (s *AttachmentService) DeletePhoto(id, companyID string) error {
	photo, err := s.photoRepo.FindByID(id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to find photo: %w", err)
	}

	if err := s.photoRepo.Delete(id, companyID); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	keys := []string{}
	if key := s.store.KeyFromURL(photo.FileURL); key != "" {
		keys = append(keys, key)
	}
	if photo.ThumbnailURL != nil {
		if key := s.store.KeyFromURL(*photo.ThumbnailURL); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		if err := s.store.Remove(keys...); err != nil {
			s.log.Warn("stored photo objects not removed", "photo_id", id, "error", err)
		}
	}

	return nil
}

// UploadDocumentInput describes a document upload.
type UploadDocumentInput struct {
	ProjectID   string
	CompanyID   string
	UploadedBy  string
	FileName    string
	FileSize    int64
	FileType    string
	Description *string
	File        io.Reader
}

// UploadDocument stores the file and inserts the document row.
func (s *AttachmentService) UploadDocument(input UploadDocumentInput) (*models.Document, error) {
	ext := strings.TrimPrefix(filepath.Ext(input.FileName), ".")
	key := storage.NewObjectKey(input.UploadedBy, ext)

	fileURL, err := s.store.Save(key, input.File)
	if err != nil {
		s.log.Error("document upload failed", "key", key, "error", err)
		return nil, ErrUploadFailed
	}

	document := &models.Document{
		ProjectID:   input.ProjectID,
		CompanyID:   input.CompanyID,
		UploadedBy:  input.UploadedBy,
		FileURL:     fileURL,
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		FileType:    input.FileType,
		Description: input.Description,
	}

	if err := s.documentRepo.Create(document); err != nil {
		s.store.Remove(key)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return document, nil
}

// ListDocuments returns the company's documents, optionally for one project.
func (s *AttachmentService) ListDocuments(companyID string, projectID *string) ([]models.Document, error) {
	documents, err := s.documentRepo.List(companyID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

// DeleteDocument removes the document row, then its stored object.
func (s *AttachmentService) DeleteDocument(id, companyID string) error {
	document, err := s.documentRepo.FindByID(id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to find document: %w", err)
	}

	if err := s.documentRepo.Delete(id, companyID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if key := s.store.KeyFromURL(document.FileURL); key != "" {
		if err := s.store.Remove(key); err != nil {
			s.log.Warn("stored document object not removed", "document_id", id, "error", err)
		}
	}

	return nil
}
