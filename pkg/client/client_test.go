package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/numera/internal/testutil/apitest"
	"github.com/pratik-mahalle/numera/pkg/client"
)

func TestClient_EndToEnd(t *testing.T) {
	srv := apitest.NewServer(t, 2)
	ctx := context.Background()
	c := client.NewClient(client.Config{BaseURL: srv.URL + "/"})

	require.NoError(t, c.Ping(ctx))

	signup, err := c.Signup(ctx, client.SignupRequest{Email: "jane@example.com", Password: "secret123", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", signup.User.Email)
	assert.Equal(t, "free", signup.User.Plan)
	assert.Equal(t, signup.Token, c.GetToken())

	c.Logout()
	_, err = c.Dashboard().Stats(ctx)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())

	_, err = c.Login(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)

	first, err := c.Reports().Generate(ctx, client.GenerateRequest{
		FullName:    "Jane Doe",
		DateOfBirth: "1990-01-15",
		Extra:       map[string]interface{}{"birthPlace": "Oslo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "numerology", first.Type)
	assert.Equal(t, "Oslo", first.InputData["birthPlace"])
	assert.Equal(t, []string{"purple", "violet", "indigo"}, first.Result.LuckyColors)

	second, err := c.Reports().Generate(ctx, client.GenerateRequest{FullName: "Jane Doe", DateOfBirth: "1990-01-15", Type: "tarot"})
	require.NoError(t, err)

	_, err = c.Reports().Generate(ctx, client.GenerateRequest{FullName: "Jane Doe", DateOfBirth: "1990-01-15"})
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsQuotaExceeded())
	assert.False(t, apiErr.IsRateLimited())

	page, err := c.Reports().History(ctx, &client.ListOptions{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Reports, 1)
	assert.Equal(t, second.ID, page.Reports[0].ID)
	assert.Equal(t, client.Pagination{Page: 1, Limit: 1, Total: 2, Pages: 2}, page.Pagination)

	require.NoError(t, c.Reports().Delete(ctx, first.ID))
	err = c.Reports().Delete(ctx, first.ID)
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNotFound())

	stats, err := c.Dashboard().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalReports)
	assert.Equal(t, 2, stats.UsedQueries)
	assert.Equal(t, 0, stats.RemainingUsage)

	profile, err := c.Dashboard().UpdateProfile(ctx, "Janet")
	require.NoError(t, err)
	assert.Equal(t, "Janet", profile.Name)

	profile, err = c.Dashboard().Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Janet", profile.Name)
	assert.Equal(t, 2, profile.QueryLimit)
}

func TestClient_ForgotPassword(t *testing.T) {
	srv := apitest.NewServer(t, 10)
	c := client.NewClient(client.Config{BaseURL: srv.URL})

	known, err := c.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, known)

	_, err = c.ForgotPassword(context.Background(), "")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsValidationError())
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.NewClient(client.Config{BaseURL: srv.URL})
	err := c.Ping(context.Background())

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, "bad gateway", apiErr.Message)
}
