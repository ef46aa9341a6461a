package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pratik-mahalle/numera/internal/config"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/repository/postgres"
	"github.com/pratik-mahalle/numera/migrations"
)

// NewTestDB creates a migrated in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := postgres.New(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if _, err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { CleanupDB(db) })
	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sqlx.DB) {
	if db != nil {
		db.Close()
	}
}

// NewLogger returns a logger that only reports errors
func NewLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// Clock is a manually advanced time source. Each Now call moves it forward
// by Step so consecutive records get distinct timestamps.
type Clock struct {
	nanos atomic.Int64
	Step  time.Duration
}

// NewClock starts a clock at start
func NewClock(start time.Time) *Clock {
	c := &Clock{Step: time.Millisecond}
	c.nanos.Store(start.UnixNano())
	return c
}

// Now returns the current time and advances by Step
func (c *Clock) Now() time.Time {
	return time.Unix(0, c.nanos.Add(int64(c.Step))-int64(c.Step)).UTC()
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.nanos.Add(int64(d))
}

var userSeq atomic.Int64

// NewUser builds an unsaved free-plan user with a unique email
func NewUser(limit int) *user.User {
	n := userSeq.Add(1)
	return &user.User{
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "not-a-real-hash",
		Name:         fmt.Sprintf("User %d", n),
		Plan:         user.PlanFree,
		QueryLimit:   limit,
	}
}

// CreateUser saves a fresh user into repo
func CreateUser(t *testing.T, repo user.Repository, limit int) *user.User {
	t.Helper()
	u := NewUser(limit)
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}
