package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Plan         string `db:"plan"`
	UsedQueries  int    `db:"used_queries"`
	QueryLimit   int    `db:"query_limit"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

func (r userRow) toDomain() *user.User {
	return &user.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Plan:         r.Plan,
		UsedQueries:  r.UsedQueries,
		QueryLimit:   r.QueryLimit,
		CreatedAt:    time.Unix(0, r.CreatedAt),
		UpdatedAt:    time.Unix(0, r.UpdatedAt),
	}
}

const userColumns = `id, email, password_hash, name, plan, used_queries, query_limit, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := r.now()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = user.NormalizeEmail(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Plan, u.UsedQueries, u.QueryLimit,
		now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.AlreadyExists("User already exists")
		}
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, user.NormalizeEmail(email))
}

func (r *UserRepository) get(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return row.toDomain(), nil
}

// UpdateName sets the display name
func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	query := r.db.Rebind(`UPDATE users SET name = ?, updated_at = ? WHERE id = ?`)
	return r.execOne(ctx, "Failed to update user", query, name, r.now().UnixNano(), id)
}

// ReserveQuery increments used queries in a single conditional update
func (r *UserRepository) ReserveQuery(ctx context.Context, id string) error {
	query := r.db.Rebind(`
		UPDATE users
		SET used_queries = used_queries + 1, updated_at = ?
		WHERE id = ? AND used_queries < query_limit
	`)

	result, err := r.db.ExecContext(ctx, query, r.now().UnixNano(), id)
	if err != nil {
		return errors.DatabaseError("Failed to reserve query", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to reserve query", err)
	}
	if rows == 1 {
		return nil
	}

	// Nothing updated: either the user is gone or the ceiling is reached
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return errors.QuotaExceeded("Query limit reached. Upgrade your plan for more queries.")
}

// ReleaseQuery gives back one query, never going below zero
func (r *UserRepository) ReleaseQuery(ctx context.Context, id string) error {
	query := r.db.Rebind(`
		UPDATE users
		SET used_queries = used_queries - 1, updated_at = ?
		WHERE id = ? AND used_queries > 0
	`)
	if _, err := r.db.ExecContext(ctx, query, r.now().UnixNano(), id); err != nil {
		return errors.DatabaseError("Failed to release query", err)
	}
	return nil
}

// SetUsage overwrites the usage counters. Plan management lives outside this
// service; this exists for operators and tests.
func (r *UserRepository) SetUsage(ctx context.Context, id string, used, limit int) error {
	query := r.db.Rebind(`UPDATE users SET used_queries = ?, query_limit = ?, updated_at = ? WHERE id = ?`)
	return r.execOne(ctx, "Failed to update usage", query, used, limit, r.now().UnixNano(), id)
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "Failed to delete user", r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, errors.DatabaseError("Failed to count users", err)
	}
	return n, nil
}

func (r *UserRepository) execOne(ctx context.Context, msg, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.DatabaseError(msg, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError(msg, err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}
	return nil
}
