package workers

import (
	"context"
	"fmt"

	"socprobe/internal/domain"
	"socprobe/internal/logger"
	"socprobe/internal/storage/snapshot"
)

type HistoryRecordWorker struct {
	repo  domain.HistoryRepository
	store *snapshot.SnapshotStore
	log   logger.Logger
}

func NewHistoryRecordWorker(repo domain.HistoryRepository, store *snapshot.SnapshotStore, log logger.Logger) Worker {
	return &HistoryRecordWorker{
		repo:  repo,
		store: store,
		log:   log,
	}
}

func (w *HistoryRecordWorker) Name() string {
	return "history_record"
}

func (w *HistoryRecordWorker) Run(ctx context.Context) error {
	snap, ok := w.store.Latest()
	if !ok {
		w.log.Debug("worker: no snapshot to record yet", "name", w.Name())
		return nil
	}

	sample := domain.NewHistorySample(snap)
	if err := w.repo.Insert(ctx, &sample); err != nil {
		return fmt.Errorf("failed to record history sample: %w", err)
	}

	return nil
}
