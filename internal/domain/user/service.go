package user

import "context"

// SignupInput is the data needed to register an account
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// Service defines the interface for account business logic
type Service interface {
	// Signup registers a new free-plan account
	Signup(ctx context.Context, in SignupInput) (*User, error)

	// Authenticate checks credentials. Unknown emails and wrong passwords fail identically.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// RequestPasswordReset acknowledges a reset request without revealing whether the account exists
	RequestPasswordReset(ctx context.Context, email string) error

	// GetProfile retrieves the caller's own record
	GetProfile(ctx context.Context, userID string) (*User, error)

	// UpdateName trims and stores a new display name
	UpdateName(ctx context.Context, userID, name string) (*User, error)

	// Stats combines usage counters with a live report count
	Stats(ctx context.Context, userID string) (*Stats, error)
}
