package dto

import (
	"time"

	"github.com/pratik-mahalle/numera/internal/domain/user"
)

// UserDTO is the account summary returned with a token
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
}

// ProfileDTO is the caller's full account record without credentials
type ProfileDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Plan        string    `json:"plan"`
	UsedQueries int       `json:"usedQueries"`
	QueryLimit  int       `json:"queryLimit"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateProfileRequest represents a profile update. Only the name is mutable.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// NewUserDTO converts a user for auth responses
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Plan:  u.Plan,
	}
}

// NewProfileDTO converts a user for profile responses
func NewProfileDTO(u *user.User) *ProfileDTO {
	return &ProfileDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Plan:        u.Plan,
		UsedQueries: u.UsedQueries,
		QueryLimit:  u.QueryLimit,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
