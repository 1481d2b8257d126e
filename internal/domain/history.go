package domain

import (
	"context"
	"time"
)

type HistoryRepository interface {
	Insert(ctx context.Context, s *HistorySample) error
	List(ctx context.Context, since time.Time, limit int) ([]HistorySample, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewHistorySample pulls the headline values out of a snapshot.
func NewHistorySample(s Snapshot) HistorySample {
	return HistorySample{
		CPULoad:        s.CPU.Load.Total,
		GPUBusy:        s.GPU.Load.BusyPercent,
		CPUTemperature: s.Thermal.CPU,
		BatteryLevel:   s.Power.Battery.Level,
		MemUsedPercent: s.Memory.UsedPercent,
		Data:           s,
		RecordedAt:     s.RecordedAt,
	}
}
