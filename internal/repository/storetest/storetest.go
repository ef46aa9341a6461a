// Package storetest holds the behavioural contract every repository adapter must satisfy.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/testutil"
)

// Factory returns fresh, empty repositories sharing one backing store
type Factory func(t *testing.T) (user.Repository, report.Repository)

// Run executes the whole contract against the adapter built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("Quota", func(t *testing.T) { testQuota(t, newStore) })
	t.Run("Reports", func(t *testing.T) { testReports(t, newStore) })
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create assigns id and normalizes email", func(t *testing.T) {
		users, _ := newStore(t)
		u := &user.User{Email: "  Mixed@Example.COM ", PasswordHash: "h", Name: "Mixed", Plan: user.PlanFree, QueryLimit: 10}
		require.NoError(t, users.Create(ctx, u))

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "mixed@example.com", u.Email)
		assert.False(t, u.CreatedAt.IsZero())

		got, err := users.GetByEmail(ctx, "MIXED@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "h", got.PasswordHash)
		assert.Equal(t, 0, got.UsedQueries)
		assert.Equal(t, 10, got.QueryLimit)
		assert.Equal(t, user.PlanFree, got.Plan)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users, _ := newStore(t)
		require.NoError(t, users.Create(ctx, &user.User{Email: "dup@example.com", PasswordHash: "h", Plan: user.PlanFree}))

		err := users.Create(ctx, &user.User{Email: "DUP@example.com", PasswordHash: "h", Plan: user.PlanFree})
		assert.ErrorIs(t, err, errors.ErrAlreadyExists)

		n, err := users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("unknown user", func(t *testing.T) {
		users, _ := newStore(t)

		_, err := users.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, errors.ErrNotFound)
		_, err = users.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, errors.ErrNotFound)
		assert.ErrorIs(t, users.UpdateName(ctx, "missing", "x"), errors.ErrNotFound)
		assert.ErrorIs(t, users.ReserveQuery(ctx, "missing"), errors.ErrNotFound)
		assert.ErrorIs(t, users.Delete(ctx, "missing"), errors.ErrNotFound)
	})

	t.Run("update name touches nothing else", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 10)
		require.NoError(t, users.ReserveQuery(ctx, u.ID))

		require.NoError(t, users.UpdateName(ctx, u.ID, "Renamed"))

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, u.Plan, got.Plan)
		assert.Equal(t, 1, got.UsedQueries)
		assert.Equal(t, 10, got.QueryLimit)
	})

	t.Run("returned users are copies", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 10)

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		got.UsedQueries = 99

		again, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, again.UsedQueries)
	})

	t.Run("delete", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 10)

		require.NoError(t, users.Delete(ctx, u.ID))
		_, err := users.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func testQuota(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("reserve stops at the limit", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 3)

		for i := 0; i < 3; i++ {
			require.NoError(t, users.ReserveQuery(ctx, u.ID))
		}
		assert.ErrorIs(t, users.ReserveQuery(ctx, u.ID), errors.ErrQuotaExceeded)

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.UsedQueries)
	})

	t.Run("release never goes negative", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 3)

		require.NoError(t, users.ReserveQuery(ctx, u.ID))
		require.NoError(t, users.ReleaseQuery(ctx, u.ID))
		require.NoError(t, users.ReleaseQuery(ctx, u.ID))

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.UsedQueries)
	})

	t.Run("concurrent reservations never exceed the limit", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 5)

		var wg sync.WaitGroup
		var mu sync.Mutex
		granted := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := users.ReserveQuery(ctx, u.ID); err == nil {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 5, granted)
		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.UsedQueries)
	})

	// Plan and quota are decided by the stored record. A change made after a
	// caller last looked at the user must govern the next reservation.
	t.Run("store of record decides quota", func(t *testing.T) {
		users, _ := newStore(t)
		u := testutil.CreateUser(t, users, 10)
		snapshot, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, snapshot.HasQuota())

		require.NoError(t, users.SetUsage(ctx, u.ID, 10, 10))
		assert.ErrorIs(t, users.ReserveQuery(ctx, u.ID), errors.ErrQuotaExceeded)

		require.NoError(t, users.SetUsage(ctx, u.ID, 0, 1))
		assert.NoError(t, users.ReserveQuery(ctx, u.ID))
		assert.ErrorIs(t, users.ReserveQuery(ctx, u.ID), errors.ErrQuotaExceeded)

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.UsedQueries)
		assert.Equal(t, 1, got.QueryLimit)
	})
}

func testReports(t *testing.T, newStore Factory) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	newReport := func(owner string, i int) *report.Report {
		return &report.Report{
			UserID: owner,
			Type:   report.TypeNumerology,
			InputData: report.InputData{
				FullName:    "Jane Doe",
				DateOfBirth: "1990-01-15",
				Extra:       map[string]interface{}{"seq": float64(i)},
			},
			Result:    report.Result{LifePathNumber: 8, LuckyNumbers: []int{8, 9, 9}},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	t.Run("create and get round trip", func(t *testing.T) {
		users, reports := newStore(t)
		owner := testutil.CreateUser(t, users, 10)

		rep := newReport(owner.ID, 0)
		require.NoError(t, reports.Create(ctx, rep))
		assert.NotEmpty(t, rep.ID)

		got, err := reports.GetByID(ctx, rep.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, got.UserID)
		assert.Equal(t, report.TypeNumerology, got.Type)
		assert.Equal(t, "Jane Doe", got.InputData.FullName)
		assert.Equal(t, float64(0), got.InputData.Extra["seq"])
		assert.Equal(t, []int{8, 9, 9}, got.Result.LuckyNumbers)
		assert.True(t, rep.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("list is owner scoped and newest first", func(t *testing.T) {
		users, reports := newStore(t)
		alice := testutil.CreateUser(t, users, 100)
		bob := testutil.CreateUser(t, users, 100)

		for i := 0; i < 25; i++ {
			require.NoError(t, reports.Create(ctx, newReport(alice.ID, i)))
		}
		for i := 0; i < 3; i++ {
			require.NoError(t, reports.Create(ctx, newReport(bob.ID, i)))
		}

		page, total, err := reports.ListByOwner(ctx, alice.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		require.Len(t, page, 10)
		assert.Equal(t, float64(24), page[0].InputData.Extra["seq"])
		for i := 1; i < len(page); i++ {
			assert.True(t, page[i-1].CreatedAt.After(page[i].CreatedAt))
		}
		for _, rep := range page {
			assert.Equal(t, alice.ID, rep.UserID)
		}

		last, total, err := reports.ListByOwner(ctx, alice.ID, 10, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, last, 5)
		assert.Equal(t, float64(0), last[4].InputData.Extra["seq"])

		beyond, _, err := reports.ListByOwner(ctx, alice.ID, 10, 30)
		require.NoError(t, err)
		assert.Empty(t, beyond)

		n, err := reports.CountByOwner(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		n, err = reports.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(28), n)
	})

	t.Run("equal timestamps list latest insert first", func(t *testing.T) {
		users, reports := newStore(t)
		owner := testutil.CreateUser(t, users, 10)

		for i := 0; i < 4; i++ {
			rep := newReport(owner.ID, i)
			rep.CreatedAt = base
			require.NoError(t, reports.Create(ctx, rep))
		}

		page, _, err := reports.ListByOwner(ctx, owner.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, page, 4)
		for i, rep := range page {
			assert.Equal(t, float64(3-i), rep.InputData.Extra["seq"])
		}
	})

	t.Run("negative offset reads the first page", func(t *testing.T) {
		users, reports := newStore(t)
		owner := testutil.CreateUser(t, users, 10)
		for i := 0; i < 3; i++ {
			require.NoError(t, reports.Create(ctx, newReport(owner.ID, i)))
		}

		page, total, err := reports.ListByOwner(ctx, owner.ID, 2, -10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 2)
		assert.Equal(t, float64(2), page[0].InputData.Extra["seq"])
	})

	t.Run("delete", func(t *testing.T) {
		users, reports := newStore(t)
		owner := testutil.CreateUser(t, users, 10)
		rep := newReport(owner.ID, 0)
		require.NoError(t, reports.Create(ctx, rep))

		require.NoError(t, reports.Delete(ctx, rep.ID))
		_, err := reports.GetByID(ctx, rep.ID)
		assert.ErrorIs(t, err, errors.ErrNotFound)
		assert.ErrorIs(t, reports.Delete(ctx, rep.ID), errors.ErrNotFound)

		n, err := reports.CountByOwner(ctx, owner.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
