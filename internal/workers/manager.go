// Package workers runs the periodic jobs of serve mode: sampling,
// history recording and history retention.
package workers

import (
	"context"
	"time"

	"socprobe/internal/config"
	"socprobe/internal/domain"
	"socprobe/internal/logger"
	"socprobe/internal/storage/snapshot"
	"socprobe/internal/sysfs"
)

const historyRecordInterval = time.Minute

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

type Sampler interface {
	Snapshot() domain.Snapshot
	Stats() sysfs.Stats
}

type Observer interface {
	Observe(s domain.Snapshot)
	ObserveReads(st sysfs.Stats)
}

type Publisher interface {
	Publish(s domain.Snapshot)
}

type Manager struct {
	scheduler *Scheduler
	cfg       *config.Config
	log       logger.Logger

	services *ManagerServices
}

// ManagerServices holds the collaborators. Observer, Publisher and
// History may be nil.
type ManagerServices struct {
	Telemetry Sampler
	Store     *snapshot.SnapshotStore
	Observer  Observer
	Publisher Publisher
	History   domain.HistoryRepository
}

func NewManager(scheduler *Scheduler, cfg *config.Config, log logger.Logger, services *ManagerServices) *Manager {
	return &Manager{
		scheduler: scheduler,
		cfg:       cfg,
		log:       log,

		services: services,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.log.Info("worker: manager started", "interval", m.cfg.Interval)

	m.scheduler.RunByDuration(ctx, m.cfg.Interval, NewSampleWorker(
		m.services.Telemetry,
		m.services.Store,
		m.services.Observer,
		m.services.Publisher,
	))

	if m.services.History == nil {
		return
	}

	m.scheduler.RunByDuration(ctx, historyRecordInterval, NewHistoryRecordWorker(m.services.History, m.services.Store, m.log))

	m.scheduler.RunDaily(ctx, DailySchedule{Hour: 2, Minute: 0}, NewHistoryCleanupWorker(m.services.History, m.cfg.HistoryRetention, m.log))
}

func (m *Manager) Wait() {
	m.scheduler.Wait()
}
