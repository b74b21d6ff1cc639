// Package health serves liveness and readiness probes.
//
// Readiness runs named checks in parallel under a shared timeout. The db,
// redis and job packages expose Healthcheck closures with the CheckFunc
// signature:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	    "jobs":     job.Healthcheck(manager),
//	}, health.WithLogger(log)))
//
// Handlers answer plain text by default and JSON when the request sends
// Accept: application/json or ?format=json. Run evaluates the same checks
// outside HTTP, for example from a CLI.
package health
