package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/numera/internal/repository/memory"
	"github.com/pratik-mahalle/numera/internal/testutil"
)

type countingCleaner struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
}

func (c *countingCleaner) Cleanup(maxIdle time.Duration) int {
	c.calls.Add(1)
	c.maxIdle.Store(int64(maxIdle))
	return 2
}

func newMaintenance(t *testing.T, schedule string, cleaners ...Cleaner) *Maintenance {
	t.Helper()
	store := memory.New(nil)
	testutil.CreateUser(t, store.Users, 10)
	m, err := NewMaintenance(store.UserRepo(), store.ReportRepo(), schedule, testutil.NewLogger(), cleaners...)
	require.NoError(t, err)
	return m
}

func TestNewMaintenance_RejectsBadSchedule(t *testing.T) {
	store := memory.New(nil)
	_, err := NewMaintenance(store.UserRepo(), store.ReportRepo(), "every so often", testutil.NewLogger())
	assert.Error(t, err)
}

func TestMaintenance_RunOnce(t *testing.T) {
	cleaner := &countingCleaner{}
	m := newMaintenance(t, "@every 1h", cleaner)

	m.RunOnce(context.Background())

	assert.Equal(t, int32(1), cleaner.calls.Load())
	assert.Equal(t, int64(LimiterIdleTTL), cleaner.maxIdle.Load())
}

func TestMaintenance_RunOnceSkipsCancelledContext(t *testing.T) {
	cleaner := &countingCleaner{}
	m := newMaintenance(t, "@every 1h", cleaner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.RunOnce(ctx)

	assert.Equal(t, int32(0), cleaner.calls.Load())
}

func TestMaintenance_StartStop(t *testing.T) {
	cleaner := &countingCleaner{}
	m := newMaintenance(t, "@every 1h", cleaner)

	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, int32(1), cleaner.calls.Load(), "start runs one pass immediately")
	assert.Error(t, m.Start(context.Background()))

	m.Stop()
	m.Stop()

	require.NoError(t, m.Start(context.Background()))
	m.Stop()
	assert.Equal(t, int32(2), cleaner.calls.Load())
}
