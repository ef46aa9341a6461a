package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/repository/memory"
	"github.com/pratik-mahalle/numera/internal/testutil"
)

func validInput() report.GenerateInput {
	return report.GenerateInput{
		InputData: report.InputData{FullName: "Jane Doe", DateOfBirth: "1990-01-15"},
	}
}

func newReportService(t *testing.T) (*ReportService, *memory.Store) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := memory.New(clock.Now)
	svc := NewReportService(store.UserRepo(), store.ReportRepo(), NewCalculator(nil), clock.Now, testutil.NewLogger())
	return svc, store
}

func TestReportService_Generate(t *testing.T) {
	svc, store := newReportService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, store.Users, 10)

	in := validInput()
	in.InputData.Extra = map[string]interface{}{"birthPlace": "Oslo"}

	rep, err := svc.Generate(ctx, owner.ID, in)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, owner.ID, rep.UserID)
	assert.Equal(t, report.TypeNumerology, rep.Type)
	assert.Equal(t, 8, rep.Result.LifePathNumber)
	assert.Equal(t, "Oslo", rep.InputData.Extra["birthPlace"])
	assert.False(t, rep.CreatedAt.IsZero())

	u, err := store.Users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.UsedQueries)
}

func TestReportService_GenerateValidation(t *testing.T) {
	svc, store := newReportService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, store.Users, 10)

	tests := []struct {
		name string
		in   report.GenerateInput
	}{
		{name: "missing full name", in: report.GenerateInput{InputData: report.InputData{DateOfBirth: "1990-01-15"}}},
		{name: "missing date of birth", in: report.GenerateInput{InputData: report.InputData{FullName: "Jane"}}},
		{name: "unknown type", in: report.GenerateInput{InputData: validInput().InputData, Type: "horoscope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, owner.ID, tt.in)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}

	u, err := store.Users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, u.UsedQueries)
	n, err := store.Reports.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReportService_GenerateUnknownUser(t *testing.T) {
	svc, _ := newReportService(t)

	_, err := svc.Generate(context.Background(), "deleted-user", validInput())
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReportService_QuotaSequential(t *testing.T) {
	svc, store := newReportService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, store.Users, 10)

	for i := 1; i <= 10; i++ {
		_, err := svc.Generate(ctx, owner.ID, validInput())
		require.NoError(t, err, "call %d", i)

		u, err := store.Users.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, i, u.UsedQueries)
	}

	_, err := svc.Generate(ctx, owner.ID, validInput())
	require.ErrorIs(t, err, errors.ErrQuotaExceeded)
	assert.Equal(t, 429, errors.As(err, "").StatusCode)

	u, err := store.Users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, u.UsedQueries)

	n, err := store.Reports.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
}

func TestReportService_QuotaConcurrent(t *testing.T) {
	svc, store := newReportService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, store.Users, 5)

	var wg sync.WaitGroup
	errs := make([]error, 25)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Generate(ctx, owner.ID, validInput())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errors.ErrQuotaExceeded)
	}
	assert.Equal(t, 5, succeeded)

	u, err := store.Users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, u.UsedQueries)
	n, err := store.Reports.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestReportService_ReleasesQueryWhenSaveFails(t *testing.T) {
	store := memory.New(nil)
	failing := testutil.NewMockReportRepository(store.ReportRepo())
	failing.CreateError = stderrors.New("disk full")
	svc := NewReportService(store.UserRepo(), failing, nil, nil, testutil.NewLogger())

	ctx := context.Background()
	owner := testutil.CreateUser(t, store.Users, 10)

	_, err := svc.Generate(ctx, owner.ID, validInput())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.As(err, "").Code)

	u, err := store.Users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, u.UsedQueries)
}

func TestReportService_Delete(t *testing.T) {
	svc, store := newReportService(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, store.Users, 10)
	bob := testutil.CreateUser(t, store.Users, 10)

	rep, err := svc.Generate(ctx, alice.ID, validInput())
	require.NoError(t, err)

	t.Run("not owner", func(t *testing.T) {
		err := svc.Delete(ctx, bob.ID, rep.ID)
		assert.ErrorIs(t, err, errors.ErrForbidden)

		_, err = store.Reports.GetByID(ctx, rep.ID)
		assert.NoError(t, err)
	})

	t.Run("missing report", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, alice.ID, "missing"), errors.ErrNotFound)
	})

	t.Run("owner", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, alice.ID, rep.ID))

		_, err := store.Reports.GetByID(ctx, rep.ID)
		assert.ErrorIs(t, err, errors.ErrNotFound)

		// Quota consumption is permanent
		u, err := store.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, u.UsedQueries)

		assert.ErrorIs(t, svc.Delete(ctx, alice.ID, rep.ID), errors.ErrNotFound)
	})
}

func TestReportService_ListPagination(t *testing.T) {
	svc, store := newReportService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, store.Users, 100)
	other := testutil.CreateUser(t, store.Users, 100)

	var ids []string
	for i := 0; i < 25; i++ {
		rep, err := svc.Generate(ctx, owner.ID, validInput())
		require.NoError(t, err)
		ids = append(ids, rep.ID)
	}
	_, err := svc.Generate(ctx, other.ID, validInput())
	require.NoError(t, err)

	params := utils.NewPaginationParams(3, 10)
	page, total, err := svc.List(ctx, owner.ID, params.Limit, params.Offset)
	require.NoError(t, err)

	p := utils.NewPagination(params.Page, params.Limit, total)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.Pages)
	require.Len(t, page, 5)
	// Newest first, so the last page holds the five oldest
	assert.Equal(t, ids[4], page[0].ID)
	assert.Equal(t, ids[0], page[4].ID)

	first, _, err := svc.List(ctx, owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, ids[24], first[0].ID)
}
