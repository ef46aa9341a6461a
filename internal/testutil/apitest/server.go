// Package apitest runs the full HTTP stack over an in-memory store for
// tests of API consumers.
package apitest

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/numera/internal/api/handlers"
	"github.com/pratik-mahalle/numera/internal/api/router"
	"github.com/pratik-mahalle/numera/internal/auth"
	"github.com/pratik-mahalle/numera/internal/config"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
	"github.com/pratik-mahalle/numera/internal/repository/memory"
	"github.com/pratik-mahalle/numera/internal/services"
	"github.com/pratik-mahalle/numera/internal/testutil"
)

// NewServer starts an API server whose free plan allows freeLimit reports.
// It is closed when the test ends.
func NewServer(t *testing.T, freeLimit int) *httptest.Server {
	t.Helper()

	log := testutil.NewLogger()
	store := memory.New(nil)
	tokens := auth.NewTokenService("apitest-secret", auth.DefaultTokenTTL)
	val := validator.New()

	userService := services.NewUserService(store.UserRepo(), store.ReportRepo(), services.UserServiceConfig{
		BCryptCost: bcrypt.MinCost,
		FreeLimit:  freeLimit,
	}, log)
	reportService := services.NewReportService(store.UserRepo(), store.ReportRepo(), nil, nil, log)

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(nil, log),
		Auth:      handlers.NewAuthHandler(userService, tokens, log, val),
		Dashboard: handlers.NewDashboardHandler(userService, reportService, log, val),
		Tool:      handlers.NewToolHandler(reportService, log, val),
	}

	srv := httptest.NewServer(router.New(&config.Config{}, log, h, router.Deps{Tokens: tokens}))
	t.Cleanup(srv.Close)
	return srv
}
