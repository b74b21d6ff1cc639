package job

import (
	"context"
	"log/slog"
)

type config struct {
	logger     *slog.Logger
	schedules  []scheduleConfig
	maxWorkers int
	runOnStart bool
}

type scheduleConfig struct {
	handler  scheduledHandler
	name     string
	schedule string
}

type scheduledHandler func(context.Context) error

// Option configures the job manager.
type Option func(*config)

// WithScheduledTask registers a periodic task using structural typing.
// Schedule() returns a five-field cron expression (min hour day month weekday).
//
// Example:
//
//	job.WithScheduledTask(session.NewPurgeTask(store, "*/15 * * * *", log))
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, scheduleConfig{
			name:     task.Name(),
			schedule: task.Schedule(),
			handler:  task.Handle,
		})
	}
}

// WithLogger sets the logger for job processing.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers sets the number of workers of the default queue.
// Defaults to 10.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithRunOnStart makes every scheduled task run once as soon as the manager starts.
func WithRunOnStart() Option {
	return func(c *config) {
		c.runOnStart = true
	}
}
