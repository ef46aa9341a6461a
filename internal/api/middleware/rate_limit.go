package middleware

import (
	"net"
	"net/http"

	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/metrics"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/ratelimit"
)

// RateLimit returns a middleware that rate limits requests by client IP.
// Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, name string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				log.WithFields(map[string]interface{}{
					"limiter": name,
				}).WarnWithErr(err, "Rate limiter unavailable")
				allowed = true
			}

			if !allowed {
				metrics.RecordRateLimited(name)
				utils.WriteError(w, errors.RateLimited("Too many requests. Please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
