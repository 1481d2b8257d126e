package workers

import (
	"context"
	"fmt"
	"time"

	"socprobe/internal/domain"
	"socprobe/internal/logger"
)

type HistoryCleanupWorker struct {
	repo      domain.HistoryRepository
	retention time.Duration
	now       func() time.Time
	log       logger.Logger
}

func NewHistoryCleanupWorker(repo domain.HistoryRepository, retention time.Duration, log logger.Logger) Worker {
	return &HistoryCleanupWorker{
		repo:      repo,
		retention: retention,
		now:       time.Now,
		log:       log,
	}
}

func (w *HistoryCleanupWorker) Name() string {
	return "history_cleanup"
}

func (w *HistoryCleanupWorker) Run(ctx context.Context) error {
	if w.retention <= 0 {
		return nil
	}

	deleted, err := w.repo.DeleteOlderThan(ctx, w.now().Add(-w.retention))
	if err != nil {
		return fmt.Errorf("failed to delete old history: %w", err)
	}

	w.log.Info("worker: history pruned", "name", w.Name(), "deleted", deleted)

	return nil
}
