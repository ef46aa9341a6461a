package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
)

// ReportRepository implements report.Repository on maps
type ReportRepository struct {
	mu      sync.RWMutex
	byID    map[string]*report.Report
	byOwner map[string][]string
	now     func() time.Time
}

// NewReportRepository creates an empty report repository
func NewReportRepository(now func() time.Time) *ReportRepository {
	if now == nil {
		now = time.Now
	}
	return &ReportRepository{
		byID:    make(map[string]*report.Report),
		byOwner: make(map[string][]string),
		now:     now,
	}
}

// Create stores a new report
func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if _, exists := r.byID[rep.ID]; exists {
		return errors.AlreadyExists("Report already exists")
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = r.now()
	}

	stored := *rep
	r.byID[rep.ID] = &stored
	r.byOwner[rep.UserID] = append(r.byOwner[rep.UserID], rep.ID)
	return nil
}

// GetByID retrieves a report
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("Report")
	}
	out := *rep
	return &out, nil
}

// ListByOwner returns the owner's reports newest first
func (r *ReportRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*report.Report, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[userID]
	all := make([]*report.Report, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		all = append(all, r.byID[ids[i]])
	}
	// Later inserts stay first among equal timestamps
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*report.Report{}, total, nil
	}
	end := len(all)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}

	page := make([]*report.Report, 0, end-offset)
	for _, rep := range all[offset:end] {
		out := *rep
		page = append(page, &out)
	}
	return page, total, nil
}

// CountByOwner counts the owner's reports
func (r *ReportRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byOwner[userID])), nil
}

// Delete removes a report
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep, ok := r.byID[id]
	if !ok {
		return errors.NotFound("Report")
	}
	ids := r.byOwner[rep.UserID]
	for i, candidate := range ids {
		if candidate == id {
			r.byOwner[rep.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(r.byID, id)
	return nil
}

// Count returns the number of stored reports
func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
