package job

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/robfig/cron/v3"

	"github.com/map-framework/addon-mode-site/pkg/logger"
)

const defaultMaxWorkers = 10

// Manager runs scheduled maintenance tasks on River.
type Manager struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	tasks  map[string]scheduledHandler
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager builds the River client with one periodic job per scheduled task.
// Call Start to begin processing.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	if cfg.maxWorkers == 0 {
		cfg.maxWorkers = defaultMaxWorkers
	}

	tasks, periodic, err := buildSchedules(cfg)
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &siteTaskWorker{tasks: tasks, logger: cfg.logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: cfg.maxWorkers},
		},
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		pool:   pool,
		client: client,
		tasks:  tasks,
		logger: cfg.logger,
	}, nil
}

func buildSchedules(cfg *config) (map[string]scheduledHandler, []*river.PeriodicJob, error) {
	tasks := make(map[string]scheduledHandler, len(cfg.schedules))
	periodic := make([]*river.PeriodicJob, 0, len(cfg.schedules))

	for _, sched := range cfg.schedules {
		if _, ok := tasks[sched.name]; ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateTask, sched.name)
		}
		cronSchedule, err := parseCronSchedule(sched.schedule)
		if err != nil {
			return nil, nil, fmt.Errorf("job: invalid cron schedule %q: %w", sched.schedule, err)
		}
		tasks[sched.name] = sched.handler

		name := sched.name
		periodic = append(periodic, river.NewPeriodicJob(
			cronSchedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return siteTaskArgs{TaskName: name}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: cfg.runOnStart},
		))
	}

	return tasks, periodic, nil
}

// Tasks returns the registered task names in sorted order.
func (m *Manager) Tasks() []string {
	names := make([]string, 0, len(m.tasks))
	for name := range m.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start begins processing scheduled tasks.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}

	m.started = true
	m.logger.Info("job manager started", slog.Int("tasks", len(m.tasks)))
	return nil
}

// Stop waits for running tasks to complete and stops the client.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("job manager stopped")
	return nil
}

// StartFunc returns a startup hook for the app.
func (m *Manager) StartFunc() func(context.Context) error {
	return m.Start
}

// Shutdown returns a shutdown hook for the app.
func (m *Manager) Shutdown() func(context.Context) error {
	return m.Stop
}

// siteTaskArgs is the River job payload shared by every scheduled task.
type siteTaskArgs struct {
	TaskName string `json:"task_name"`
}

func (siteTaskArgs) Kind() string {
	return "site:task"
}

type siteTaskWorker struct {
	river.WorkerDefaults[siteTaskArgs]
	tasks  map[string]scheduledHandler
	logger *slog.Logger
}

func (w *siteTaskWorker) Work(ctx context.Context, job *river.Job[siteTaskArgs]) error {
	return w.run(ctx, job.Args.TaskName, job.ID, job.Attempt)
}

func (w *siteTaskWorker) run(ctx context.Context, name string, id int64, attempt int) error {
	handler, ok := w.tasks[name]
	if !ok || handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	w.logger.DebugContext(ctx, "executing task",
		slog.String("task", name),
		slog.Int64("job_id", id),
		slog.Int("attempt", attempt),
	)

	if err := handler(ctx); err != nil {
		w.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Int64("job_id", id),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

type cronScheduleAdapter struct {
	schedule cron.Schedule
}

func (a *cronScheduleAdapter) Next(current time.Time) time.Time {
	return a.schedule.Next(current)
}

func parseCronSchedule(expr string) (river.PeriodicSchedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &cronScheduleAdapter{schedule: schedule}, nil
}
