package user

import "context"

// Repository defines the interface for user data access.
// Lookups of unknown users return errors.ErrNotFound.
type Repository interface {
	// Create creates a new user; a taken email yields errors.ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateName sets the display name
	UpdateName(ctx context.Context, id, name string) error

	// ReserveQuery atomically increments used queries if the user is below its
	// limit. It returns errors.ErrQuotaExceeded when the ceiling is reached.
	ReserveQuery(ctx context.Context, id string) error

	// ReleaseQuery gives back one reserved query, never going below zero
	ReleaseQuery(ctx context.Context, id string) error

	// SetUsage overwrites the usage counters, as plan management does
	SetUsage(ctx context.Context, id string, used, limit int) error

	// Delete deletes a user
	Delete(ctx context.Context, id string) error

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
