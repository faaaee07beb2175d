package dto

import (
	"time"

	"github.com/takamaro111/construction-management-app/internal/models"
)

// CompanyDTO is the public shape of a company record.
type CompanyDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCompanyDTO converts a company model to its DTO.
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:         company.ID,
		Name:       company.Name,
		Email:      company.Email,
		IsApproved: company.IsApproved,
		CreatedAt:  company.CreatedAt,
	}
}
