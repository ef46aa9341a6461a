package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
)

// ReportRepository implements report.Repository
type ReportRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db, now: time.Now}
}

type reportRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Type      string `db:"type"`
	InputData string `db:"input_data"`
	Result    string `db:"result"`
	CreatedAt int64  `db:"created_at"`
}

func (r reportRow) toDomain() (*report.Report, error) {
	rep := &report.Report{
		ID:        r.ID,
		UserID:    r.UserID,
		Type:      r.Type,
		CreatedAt: time.Unix(0, r.CreatedAt),
	}
	if err := json.Unmarshal([]byte(r.InputData), &rep.InputData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(r.Result), &rep.Result); err != nil {
		return nil, err
	}
	return rep, nil
}

const reportColumns = `id, user_id, type, input_data, result, created_at`

// Create stores a new report
func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = r.now()
	}

	input, err := json.Marshal(rep.InputData)
	if err != nil {
		return errors.Internal("Failed to encode report input", err)
	}
	result, err := json.Marshal(rep.Result)
	if err != nil {
		return errors.Internal("Failed to encode report result", err)
	}

	// seq orders reports that share a timestamp by insertion
	query := r.db.Rebind(`
		INSERT INTO reports (` + reportColumns + `, seq)
		SELECT ?, ?, ?, ?, ?, CAST(? AS BIGINT), COALESCE(MAX(seq), 0) + 1
		FROM reports
		WHERE user_id = ?
	`)

	_, err = r.db.ExecContext(ctx, query,
		rep.ID, rep.UserID, rep.Type, string(input), string(result), rep.CreatedAt.UnixNano(), rep.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.AlreadyExists("Report already exists")
		}
		return errors.DatabaseError("Failed to create report", err)
	}

	return nil
}

// GetByID retrieves a report
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*report.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+reportColumns+` FROM reports WHERE id = ?`), id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("Report")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get report", err)
	}

	rep, err := row.toDomain()
	if err != nil {
		return nil, errors.DatabaseError("Failed to decode report", err)
	}
	return rep, nil
}

// ListByOwner returns the owner's reports newest first
func (r *ReportRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*report.Report, int64, error) {
	total, err := r.CountByOwner(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if offset < 0 {
		offset = 0
	}

	query := r.db.Rebind(`
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = ?
		ORDER BY created_at DESC, seq DESC, id DESC
		LIMIT ? OFFSET ?
	`)

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, errors.DatabaseError("Failed to list reports", err)
	}

	reports := make([]*report.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := row.toDomain()
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to decode report", err)
		}
		reports = append(reports, rep)
	}

	return reports, total, nil
}

// CountByOwner counts the owner's reports
func (r *ReportRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM reports WHERE user_id = ?`), userID); err != nil {
		return 0, errors.DatabaseError("Failed to count reports", err)
	}
	return n, nil
}

// Delete removes a report
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM reports WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete report", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to delete report", err)
	}
	if rows == 0 {
		return errors.NotFound("Report")
	}
	return nil
}

// Count returns the number of stored reports
func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reports`); err != nil {
		return 0, errors.DatabaseError("Failed to count reports", err)
	}
	return n, nil
}
