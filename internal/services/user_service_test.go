package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/repository/memory"
	"github.com/pratik-mahalle/numera/internal/testutil"
)

func newUserService(t *testing.T) (*UserService, *memory.Store) {
	t.Helper()
	store := memory.New(nil)
	svc := NewUserService(store.UserRepo(), store.ReportRepo(), UserServiceConfig{
		BCryptCost: bcrypt.MinCost,
		FreeLimit:  10,
	}, testutil.NewLogger())
	return svc, store
}

func TestUserService_Signup(t *testing.T) {
	tests := []struct {
		name     string
		in       user.SignupInput
		wantErr  error
		wantName string
	}{
		{
			name:     "name defaults to email local part",
			in:       user.SignupInput{Email: "a@x.com", Password: "secret1"},
			wantName: "a",
		},
		{
			name:     "explicit name is trimmed",
			in:       user.SignupInput{Email: "b@x.com", Password: "secret1", Name: "  Bea  "},
			wantName: "Bea",
		},
		{
			name:    "missing email",
			in:      user.SignupInput{Password: "secret1"},
			wantErr: errors.ErrValidation,
		},
		{
			name:    "missing password",
			in:      user.SignupInput{Email: "c@x.com"},
			wantErr: errors.ErrValidation,
		},
		{
			name:    "short password",
			in:      user.SignupInput{Email: "c@x.com", Password: "12345"},
			wantErr: errors.ErrValidation,
		},
		{
			name:    "multibyte password over 72 bytes",
			in:      user.SignupInput{Email: "d@x.com", Password: strings.Repeat("€", 40)},
			wantErr: errors.ErrValidation,
		},
		{
			name:     "multibyte password of exactly 72 bytes",
			in:       user.SignupInput{Email: "e@x.com", Password: strings.Repeat("€", 24)},
			wantName: "e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUserService(t)

			u, err := svc.Signup(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, tt.wantName, u.Name)
			assert.Equal(t, user.PlanFree, u.Plan)
			assert.Equal(t, 0, u.UsedQueries)
			assert.Equal(t, 10, u.QueryLimit)
			assert.NotEqual(t, tt.in.Password, u.PasswordHash)
		})
	}
}

func TestUserService_SignupDuplicate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, user.SignupInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, user.SignupInput{Email: " A@X.com ", Password: "another1"})
	require.ErrorIs(t, err, errors.ErrAlreadyExists)
	assert.Equal(t, 400, errors.As(err, "").StatusCode)
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, user.SignupInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "A@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, wrongPassword := svc.Authenticate(ctx, "a@x.com", "wrong-pass")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@x.com", "secret1")

	require.ErrorIs(t, wrongPassword, errors.ErrUnauthorized)
	require.ErrorIs(t, unknownEmail, errors.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserService_RequestPasswordReset(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, user.SignupInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	assert.NoError(t, svc.RequestPasswordReset(ctx, "nobody@x.com"))
	assert.ErrorIs(t, svc.RequestPasswordReset(ctx, "  "), errors.ErrValidation)
}

func TestUserService_UpdateName(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, user.SignupInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.UpdateName(ctx, created.ID, "   ")
	assert.ErrorIs(t, err, errors.ErrValidation)

	updated, err := svc.UpdateName(ctx, created.ID, " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Plan, updated.Plan)

	profile, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)

	_, err = svc.UpdateName(ctx, "missing", "Bob")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestUserService_Stats(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, user.SignupInput{Email: "a@x.com", Password: "secret1", Name: "Ann"})
	require.NoError(t, err)

	reports := NewReportService(store.UserRepo(), store.ReportRepo(), nil, nil, testutil.NewLogger())
	for i := 0; i < 3; i++ {
		_, err := reports.Generate(ctx, created.ID, validInput())
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &user.Stats{
		TotalReports:   3,
		PlanType:       user.PlanFree,
		UsedQueries:    3,
		QueryLimit:     10,
		RemainingUsage: 7,
		UserName:       "Ann",
	}, stats)

	// A lowered limit never produces negative remaining usage
	require.NoError(t, store.Users.SetUsage(ctx, created.ID, 3, 2))
	stats, err = svc.Stats(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.RemainingUsage)

	_, err = svc.Stats(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestUserService_DefaultFreeLimit(t *testing.T) {
	store := memory.New(nil)
	svc := NewUserService(store.UserRepo(), store.ReportRepo(), UserServiceConfig{BCryptCost: bcrypt.MinCost}, testutil.NewLogger())

	u, err := svc.Signup(context.Background(), user.SignupInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.DefaultQueryLimit(user.PlanFree), u.QueryLimit)
}

func TestUserService_StoreFailures(t *testing.T) {
	store := memory.New(nil)
	users := testutil.NewMockUserRepository(store.UserRepo())
	svc := NewUserService(users, store.ReportRepo(), UserServiceConfig{
		BCryptCost: bcrypt.MinCost,
		FreeLimit:  10,
	}, testutil.NewLogger())
	ctx := context.Background()

	created, err := svc.Signup(ctx, user.SignupInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	users.CreateError = stderrors.New("disk full")
	_, err = svc.Signup(ctx, user.SignupInput{Email: "b@x.com", Password: "secret1"})
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)

	users.UpdateError = errors.Internal("Failed to update user", stderrors.New("locked"))
	_, err = svc.UpdateName(ctx, created.ID, "Bob")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)

	// Lookups that fail on the store side never read as bad credentials
	users.GetError = errors.Internal("Failed to get user", stderrors.New("timeout"))
	_, err = svc.Authenticate(ctx, "a@x.com", "secret1")
	assert.NotErrorIs(t, err, errors.ErrUnauthorized)
}
