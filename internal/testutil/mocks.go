package testutil

import (
	"context"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
)

// MockUserRepository wraps a user.Repository and injects failures
type MockUserRepository struct {
	user.Repository
	CreateError  error
	GetError     error
	UpdateError  error
	ReserveError error
}

// NewMockUserRepository wraps repo
func NewMockUserRepository(repo user.Repository) *MockUserRepository {
	return &MockUserRepository{Repository: repo}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	return m.Repository.Create(ctx, u)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Repository.GetByID(ctx, id)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Repository.GetByEmail(ctx, email)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id, name string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	return m.Repository.UpdateName(ctx, id, name)
}

func (m *MockUserRepository) ReserveQuery(ctx context.Context, id string) error {
	if m.ReserveError != nil {
		return m.ReserveError
	}
	return m.Repository.ReserveQuery(ctx, id)
}

// MockReportRepository wraps a report.Repository and injects failures
type MockReportRepository struct {
	report.Repository
	CreateError error
	GetError    error
	DeleteError error
	ListError   error
}

// NewMockReportRepository wraps repo
func NewMockReportRepository(repo report.Repository) *MockReportRepository {
	return &MockReportRepository{Repository: repo}
}

func (m *MockReportRepository) Create(ctx context.Context, r *report.Report) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	return m.Repository.Create(ctx, r)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*report.Report, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Repository.GetByID(ctx, id)
}

func (m *MockReportRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*report.Report, int64, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	return m.Repository.ListByOwner(ctx, userID, limit, offset)
}

func (m *MockReportRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	return m.Repository.Delete(ctx, id)
}
