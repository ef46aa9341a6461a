package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	deps   map[string]Pinger
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler. deps maps a dependency name
// to its probe; the in-memory store needs none.
func NewHealthHandler(deps map[string]Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		deps:   deps,
		logger: log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check if the application is ready to serve requests
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ready"}
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.WithFields(map[string]interface{}{
				"dependency": name,
			}).ErrorWithErr(err, "Readiness check failed")
			utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", name+" unavailable")
			return
		}
		status[name] = "connected"
	}

	utils.WriteSuccess(w, http.StatusOK, status)
}
