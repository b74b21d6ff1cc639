// Package job runs periodic maintenance tasks on River, the Postgres-native queue.
//
// Tasks use structural typing and need no interface import:
//
//	type PurgeSessions struct{ store session.Store }
//
//	func (t *PurgeSessions) Name() string     { return "purge_sessions" }
//	func (t *PurgeSessions) Schedule() string { return "*/15 * * * *" }
//	func (t *PurgeSessions) Handle(ctx context.Context) error {
//	    _, err := t.store.DeleteExpired(ctx)
//	    return err
//	}
//
// Register them on a manager and hook it into the app lifecycle:
//
//	if err := job.Migrate(ctx, pool, log); err != nil {
//	    return err
//	}
//	m, err := job.NewManager(pool,
//	    job.WithScheduledTask(&PurgeSessions{store: store}),
//	    job.WithLogger(log),
//	)
//
// Schedules accept five cron fields or descriptors such as "@hourly".
// Healthcheck reports readiness for the health endpoints.
package job
