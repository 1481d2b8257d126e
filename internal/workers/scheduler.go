package workers

import (
	"context"
	"sync"
	"time"

	"socprobe/internal/logger"
)

type DailySchedule struct {
	Hour   int
	Minute int
}

type Scheduler struct {
	log logger.Logger
	wg  sync.WaitGroup
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// RunByDuration runs worker once immediately and then every dur until
// ctx is done.
func (s *Scheduler) RunByDuration(ctx context.Context, dur time.Duration, worker Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(dur)
		defer ticker.Stop()

		s.run(ctx, worker)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx, worker)
			}
		}
	}()
}

func (s *Scheduler) RunDaily(ctx context.Context, schedule DailySchedule, worker Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(time.Until(nextDaily(time.Now(), schedule)))
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				s.run(ctx, worker)
				timer.Reset(24 * time.Hour)
			}
		}
	}()
}

// Wait blocks until every scheduled worker has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, worker Worker) {
	start := time.Now()

	if err := worker.Run(ctx); err != nil {
		s.log.Error("worker failed", "name", worker.Name(), "error", err)
	}

	s.log.Debug("worker finished", "name", worker.Name(), "time", time.Since(start))
}

func nextDaily(now time.Time, schedule DailySchedule) time.Time {
	next := time.Date(
		now.Year(),
		now.Month(),
		now.Day(),
		schedule.Hour,
		schedule.Minute,
		0,
		0,
		now.Location(),
	)

	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}

	return next
}
