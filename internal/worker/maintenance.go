package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/metrics"
)

// LimiterIdleTTL is how long an idle client keeps its rate limiter bucket
const LimiterIdleTTL = 10 * time.Minute

// Cleaner evicts idle per-client state
type Cleaner interface {
	Cleanup(maxIdle time.Duration) int
}

// Maintenance runs periodic housekeeping: it refreshes the user and report
// gauges and evicts idle in-process rate limiter buckets.
type Maintenance struct {
	users    user.Repository
	reports  report.Repository
	cleaners []Cleaner
	schedule string
	logger   *logger.Logger

	mu        sync.Mutex
	scheduler *cron.Cron
}

// NewMaintenance creates a new maintenance worker. schedule accepts standard
// cron expressions and descriptors such as "@every 5m".
func NewMaintenance(
	users user.Repository,
	reports report.Repository,
	schedule string,
	log *logger.Logger,
	cleaners ...Cleaner,
) (*Maintenance, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule: %w", err)
	}
	return &Maintenance{
		users:    users,
		reports:  reports,
		cleaners: cleaners,
		schedule: schedule,
		logger:   log,
	}, nil
}

// Start runs one pass immediately, then schedules the rest
func (m *Maintenance) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduler != nil {
		return fmt.Errorf("maintenance worker is already running")
	}

	m.RunOnce(ctx)

	m.scheduler = cron.New()
	if _, err := m.scheduler.AddFunc(m.schedule, func() { m.RunOnce(ctx) }); err != nil {
		m.scheduler = nil
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	m.scheduler.Start()

	m.logger.WithFields(map[string]interface{}{
		"schedule": m.schedule,
	}).Info("Maintenance worker started")
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish
func (m *Maintenance) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduler == nil {
		return
	}
	<-m.scheduler.Stop().Done()
	m.scheduler = nil
	m.logger.Info("Maintenance worker stopped")
}

// RunOnce performs a single maintenance pass
func (m *Maintenance) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	users, err := m.users.Count(ctx)
	if err != nil {
		m.logger.ErrorWithErr(err, "Failed to count users")
	} else {
		metrics.SetUsersCount(users)
	}

	reports, err := m.reports.Count(ctx)
	if err != nil {
		m.logger.ErrorWithErr(err, "Failed to count reports")
	} else {
		metrics.SetReportsCount(reports)
	}

	evicted := 0
	for _, c := range m.cleaners {
		evicted += c.Cleanup(LimiterIdleTTL)
	}

	m.logger.WithFields(map[string]interface{}{
		"users":           users,
		"reports":         reports,
		"limiter_evicted": evicted,
	}).Debug("Maintenance pass completed")
}
