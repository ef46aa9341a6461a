package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
)

// UserRepository implements user.Repository on maps
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*user.User
	byEmail map[string]string
	now     func() time.Time
}

// NewUserRepository creates an empty user repository
func NewUserRepository(now func() time.Time) *UserRepository {
	if now == nil {
		now = time.Now
	}
	return &UserRepository{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]string),
		now:     now,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := user.NormalizeEmail(u.Email)
	if _, taken := r.byEmail[email]; taken {
		return errors.AlreadyExists("User already exists")
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := r.now()
	u.Email = email
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[email] = u.ID
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	out := *u
	return &out, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[user.NormalizeEmail(email)]
	if !ok {
		return nil, errors.NotFound("User")
	}
	out := *r.byID[id]
	return &out, nil
}

// UpdateName sets the display name
func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.Name = name
	u.UpdatedAt = r.now()
	return nil
}

// ReserveQuery increments used queries while below the limit
func (r *UserRepository) ReserveQuery(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return errors.NotFound("User")
	}
	if !u.HasQuota() {
		return errors.QuotaExceeded("Query limit reached. Upgrade your plan for more queries.")
	}
	u.UsedQueries++
	u.UpdatedAt = r.now()
	return nil
}

// ReleaseQuery decrements used queries, stopping at zero
func (r *UserRepository) ReleaseQuery(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return errors.NotFound("User")
	}
	if u.UsedQueries > 0 {
		u.UsedQueries--
		u.UpdatedAt = r.now()
	}
	return nil
}

// SetUsage overwrites the usage counters. It stands in for the plan
// management that happens outside this service.
func (r *UserRepository) SetUsage(ctx context.Context, id string, used, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.UsedQueries = used
	u.QueryLimit = limit
	u.UpdatedAt = r.now()
	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return errors.NotFound("User")
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
