package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pratik-mahalle/numera/internal/api/handlers"
	"github.com/pratik-mahalle/numera/internal/api/router"
	"github.com/pratik-mahalle/numera/internal/auth"
	"github.com/pratik-mahalle/numera/internal/config"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
	"github.com/pratik-mahalle/numera/internal/ratelimit"
	"github.com/pratik-mahalle/numera/internal/repository/postgres"
	"github.com/pratik-mahalle/numera/internal/services"
	"github.com/pratik-mahalle/numera/internal/testutil"
)

type apiResponse struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination json.RawMessage `json:"pagination"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// setupTestServer wires the full stack over a migrated SQLite database
func setupTestServer(t *testing.T, authLimiter ratelimit.Limiter) *httptest.Server {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(db) })

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret-key-for-testing-only",
			TokenExpiry: time.Hour,
			BCryptCost:  4, // Low cost for fast tests
		},
		Quota: config.QuotaConfig{FreeLimit: 3},
	}

	users := postgres.NewUserRepository(db)
	reports := postgres.NewReportRepository(db)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	userService := services.NewUserService(users, reports, services.UserServiceConfig{
		BCryptCost: cfg.Auth.BCryptCost,
		FreeLimit:  cfg.Quota.FreeLimit,
	}, log)
	reportService := services.NewReportService(users, reports, nil, nil, log)

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(map[string]handlers.Pinger{"database": postgres.Pinger{DB: db}}, log),
		Auth:      handlers.NewAuthHandler(userService, tokens, log, val),
		Dashboard: handlers.NewDashboardHandler(userService, reportService, log, val),
		Tool:      handlers.NewToolHandler(reportService, log, val),
	}

	ts := httptest.NewServer(router.New(cfg, log, h, router.Deps{
		Tokens:      tokens,
		AuthLimiter: authLimiter,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) (int, apiResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out apiResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("Invalid JSON from %s %s: %v (%s)", method, url, err, raw)
		}
	}
	return resp.StatusCode, out
}

func signup(t *testing.T, baseURL, email string) string {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "SecurePassword123!",
		"name":     "Integration User",
	})
	if status != http.StatusCreated {
		t.Fatalf("Signup returned status %d: %+v", status, resp.Error)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("Signup response carries no token: %v", err)
	}
	return data.Token
}
