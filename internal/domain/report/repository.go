package report

import "context"

// Repository defines the interface for report data access.
// Unknown IDs return errors.ErrNotFound.
type Repository interface {
	// Create stores a new report
	Create(ctx context.Context, r *Report) error

	// GetByID retrieves a report regardless of owner; callers check ownership
	GetByID(ctx context.Context, id string) (*Report, error)

	// ListByOwner returns a page of the owner's reports newest first, plus the owner's total
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*Report, int64, error)

	// CountByOwner counts the owner's reports
	CountByOwner(ctx context.Context, userID string) (int64, error)

	// Delete removes a report
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored reports
	Count(ctx context.Context) (int64, error)
}
