package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socprobe/internal/codec"
	"socprobe/internal/domain"
)

type HistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) domain.HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Insert(ctx context.Context, s *domain.HistorySample) error {
	data, err := codec.JSON.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO history (cpu_load, gpu_busy, cpu_temperature, battery_level, mem_used_percent, data, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		s.CPULoad, s.GPUBusy, s.CPUTemperature, s.BatteryLevel, s.MemUsedPercent,
		data, s.RecordedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to insert history sample: %w", err)
	}

	return nil
}

func (r *HistoryRepository) List(ctx context.Context, since time.Time, limit int) ([]domain.HistorySample, int64, error) {
	var total int64
	countQuery := "SELECT COUNT(*) FROM history WHERE recorded_at >= $1"
	if err := r.db.QueryRow(ctx, countQuery, since).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	query := `
		SELECT id, cpu_load, gpu_busy, cpu_temperature, battery_level, mem_used_percent, data, recorded_at
		FROM history
		WHERE recorded_at >= $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history: %w", err)
	}

	samples, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HistorySample, error) {
		var (
			s    domain.HistorySample
			data []byte
		)
		if err := row.Scan(&s.ID, &s.CPULoad, &s.GPUBusy, &s.CPUTemperature, &s.BatteryLevel, &s.MemUsedPercent, &data, &s.RecordedAt); err != nil {
			return s, err
		}
		if err := codec.JSON.Unmarshal(data, &s.Data); err != nil {
			return s, fmt.Errorf("failed to decode history sample %d: %w", s.ID, err)
		}
		s.RecordedAt = s.RecordedAt.UTC()
		return s, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan history: %w", err)
	}

	return samples, total, nil
}

func (r *HistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM history WHERE recorded_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old history: %w", err)
	}
	return tag.RowsAffected(), nil
}
