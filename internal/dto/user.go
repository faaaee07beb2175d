package dto

import (
	"time"

	"github.com/takamaro111/construction-management-app/internal/models"
)

// UserDTO is the public shape of a member profile.
type UserDTO struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	AvatarURL *string     `json:"avatar_url"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToUserDTO converts a user model to its DTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of user models.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
