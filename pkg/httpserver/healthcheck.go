package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/tripnest/inputguard/pkg/logger"
)

// Check is a named readiness dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthStatus is the body written by HealthCheckHandler.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const (
	StatusAlive    = "alive"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

const checkTimeout = 2 * time.Second

// HealthCheckHandler serves liveness when no checks are given and readiness
// otherwise. Every check runs with the request context bounded by a short
// timeout; any failure turns the response into 503 with per-check results.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			writeHealth(w, http.StatusOK, HealthStatus{Status: StatusAlive})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		status := HealthStatus{Status: StatusReady, Checks: make(map[string]string, len(checks))}
		code := http.StatusOK
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", slog.String("check", c.Name), logger.Error(err))
				status.Checks[c.Name] = err.Error()
				status.Status = StatusNotReady
				code = http.StatusServiceUnavailable
				continue
			}
			status.Checks[c.Name] = "ok"
		}
		writeHealth(w, code, status)
	}
}

func writeHealth(w http.ResponseWriter, code int, body HealthStatus) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(body)
}
