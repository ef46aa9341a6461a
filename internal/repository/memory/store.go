// Package memory provides map-backed repositories for local development and tests.
package memory

import (
	"time"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
)

// Store bundles the in-memory repositories. Each New call owns fresh maps, so
// nothing is shared across instances.
type Store struct {
	Users   *UserRepository
	Reports *ReportRepository
}

// New creates an empty in-memory store. now may be nil.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		Users:   NewUserRepository(now),
		Reports: NewReportRepository(now),
	}
}

// UserRepo returns the users repository as its interface
func (s *Store) UserRepo() user.Repository { return s.Users }

// ReportRepo returns the reports repository as its interface
func (s *Store) ReportRepo() report.Repository { return s.Reports }
