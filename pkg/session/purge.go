package session

import (
	"context"
	"log/slog"

	"github.com/map-framework/addon-mode-site/pkg/logger"
)

// DefaultPurgeSchedule runs the purge every 15 minutes.
const DefaultPurgeSchedule = "*/15 * * * *"

// PurgeTask is a scheduled job removing expired sessions from a store.
type PurgeTask struct {
	store    Store
	schedule string
	logger   *slog.Logger
}

// NewPurgeTask returns a purge job for store. An empty schedule means
// DefaultPurgeSchedule.
func NewPurgeTask(store Store, schedule string, log *slog.Logger) *PurgeTask {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	if log == nil {
		log = logger.NewNope()
	}
	return &PurgeTask{store: store, schedule: schedule, logger: log}
}

func (t *PurgeTask) Name() string {
	return "purge_expired_sessions"
}

func (t *PurgeTask) Schedule() string {
	return t.schedule
}

func (t *PurgeTask) Handle(ctx context.Context) error {
	n, err := t.store.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		t.logger.InfoContext(ctx, "expired sessions purged", slog.Int64("count", n))
	}
	return nil
}
