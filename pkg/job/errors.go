package job

import "errors"

var (
	// ErrNotConfigured is returned when jobs are used but WithJobs was not configured.
	ErrNotConfigured = errors.New("job: not configured")

	// ErrUnknownTask is returned when a job names a task that is not registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrDuplicateTask is returned when two scheduled tasks share a name.
	ErrDuplicateTask = errors.New("job: duplicate task")

	// ErrAlreadyStarted is returned when starting a running manager.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when stopping a manager that is not running.
	ErrNotStarted = errors.New("job: not started")

	// ErrPoolRequired is returned when no database pool is provided.
	ErrPoolRequired = errors.New("job: pool is required")

	// ErrMigrationFailed is returned when the queue schema cannot be migrated.
	ErrMigrationFailed = errors.New("job: migration failed")
)
