package dto

import "github.com/pratik-mahalle/numera/internal/domain/user"

// SignupRequest represents a signup request
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// Normalize lowercases and trims the email before validation
func (r *SignupRequest) Normalize() { r.Email = user.NormalizeEmail(r.Email) }

// Normalize lowercases and trims the email before validation
func (r *LoginRequest) Normalize() { r.Email = user.NormalizeEmail(r.Email) }

// Normalize lowercases and trims the email before validation
func (r *ForgotPasswordRequest) Normalize() { r.Email = user.NormalizeEmail(r.Email) }
