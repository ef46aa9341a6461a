package report

import "context"

// GenerateInput is a request to produce a report
type GenerateInput struct {
	InputData InputData
	Type      string
}

// Service defines the interface for report business logic
type Service interface {
	// Generate consumes one query from the caller's quota and stores a new report
	Generate(ctx context.Context, userID string, in GenerateInput) (*Report, error)

	// List returns the caller's reports newest first
	List(ctx context.Context, userID string, limit, offset int) ([]*Report, int64, error)

	// Delete removes one of the caller's reports. Usage is not refunded.
	Delete(ctx context.Context, userID, reportID string) error
}
