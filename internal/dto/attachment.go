package dto

import (
	"time"

	"github.com/takamaro111/construction-management-app/internal/models"
)

// PhotoDTO is the public shape of a photo record.
type PhotoDTO struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	UploadedBy   string    `json:"uploaded_by"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
	Memo         *string   `json:"memo"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToPhotoDTO converts a photo model to its DTO.
func ToPhotoDTO(photo models.Photo) PhotoDTO {
	return PhotoDTO{
		ID:           photo.ID,
		ProjectID:    photo.ProjectID,
		UploadedBy:   photo.UploadedBy,
		FileURL:      photo.FileURL,
		ThumbnailURL: photo.ThumbnailURL,
		FileName:     photo.FileName,
		FileSize:     photo.FileSize,
		Memo:         photo.Memo,
		CreatedAt:    photo.CreatedAt,
	}
}

// ToPhotoDTOs converts a slice of photo models.
func ToPhotoDTOs(photos []models.Photo) []PhotoDTO {
	dtos := make([]PhotoDTO, len(photos))
	for i, photo := range photos {
		dtos[i] = ToPhotoDTO(photo)
	}
	return dtos
}

// DocumentDTO is the public shape of a document record.
type DocumentDTO struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	UploadedBy  string    `json:"uploaded_by"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDocumentDTO converts a document model to its DTO.
func ToDocumentDTO(document models.Document) DocumentDTO {
	return DocumentDTO{
		ID:          document.ID,
		ProjectID:   document.ProjectID,
		UploadedBy:  document.UploadedBy,
		FileURL:     document.FileURL,
		FileName:    document.FileName,
		FileSize:    document.FileSize,
		FileType:    document.FileType,
		Description: document.Description,
		CreatedAt:   document.CreatedAt,
	}
}

// ToDocumentDTOs converts a slice of document models.
func ToDocumentDTOs(documents []models.Document) []DocumentDTO {
	dtos := make([]DocumentDTO, len(documents))
	for i, document := range documents {
		dtos[i] = ToDocumentDTO(document)
	}
	return dtos
}
