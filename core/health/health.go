package health

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/dmitrymomot/rango/core/handler"
	"github.com/dmitrymomot/rango/core/logger"
	"github.com/dmitrymomot/rango/core/response"
)

// Status values reported by Readiness.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Checks maps a dependency name to its ping function.
type Checks map[string]func(context.Context) error

// Report is the body written by Readiness.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness indicates the service process is running.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Readiness runs every check in name order and responds 200 when all pass,
// 503 otherwise. Failed checks are logged.
func Readiness[C handler.Context](log *slog.Logger, checks Checks) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx C) handler.Response {
		report := Report{Status: StatusOK, Checks: make(map[string]string, len(checks))}
		status := http.StatusOK

		for _, name := range slices.Sorted(maps.Keys(checks)) {
			if err := checks[name](ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Event(name),
					logger.Error(err),
				)
				report.Checks[name] = StatusUnavailable
				report.Status = StatusUnavailable
				status = http.StatusServiceUnavailable
				continue
			}
			report.Checks[name] = StatusOK
		}

		return response.JSONWithStatus(report, status)
	}
}
