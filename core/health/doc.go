// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running, no dependency checks
//   - Readiness: every named dependency check passes
//
// Usage:
//
//	checks := health.Checks{
//		"storage": sqlite.Healthcheck(db),
//		"redis":   redis.Healthcheck(client),
//	}
//	r.Get("/health/live", health.Liveness[*AppContext])
//	r.Get("/health", health.Readiness[*AppContext](logger, checks))
//
// Readiness responds with a JSON report:
//
//	{"status":"unavailable","checks":{"storage":"ok","redis":"unavailable"}}
package health
