package workers

import (
	"context"

	"socprobe/internal/storage/snapshot"
)

type SampleWorker struct {
	telemetry Sampler
	store     *snapshot.SnapshotStore
	observer  Observer
	publisher Publisher
}

func NewSampleWorker(telemetry Sampler, store *snapshot.SnapshotStore, observer Observer, publisher Publisher) Worker {
	return &SampleWorker{
		telemetry: telemetry,
		store:     store,
		observer:  observer,
		publisher: publisher,
	}
}

func (w *SampleWorker) Name() string {
	return "telemetry_sample"
}

func (w *SampleWorker) Run(ctx context.Context) error {
	snap := w.telemetry.Snapshot()

	w.store.Set(snap)

	if w.observer != nil {
		w.observer.Observe(snap)
		w.observer.ObserveReads(w.telemetry.Stats())
	}

	if w.publisher != nil {
		w.publisher.Publish(snap)
	}

	return nil
}
