package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"socprobe/internal/codec"
	"socprobe/internal/domain"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) domain.HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Insert(ctx context.Context, s *domain.HistorySample) error {
	data, err := codec.JSON.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
	INSERT INTO history (cpu_load, gpu_busy, cpu_temperature, battery_level, mem_used_percent, data, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		s.CPULoad, s.GPUBusy, s.CPUTemperature, s.BatteryLevel, s.MemUsedPercent,
		string(data), s.RecordedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history sample: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id

	return nil
}

// List returns the newest samples recorded at or after since, newest
// first, and the total number of matching rows.
func (r *HistoryRepository) List(ctx context.Context, since time.Time, limit int) ([]domain.HistorySample, int64, error) {
	from := int64(0)
	if !since.IsZero() {
		from = since.UnixNano()
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM history WHERE recorded_at >= ?"
	if err := r.db.QueryRowContext(ctx, countQuery, from).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	query := `
	SELECT id, cpu_load, gpu_busy, cpu_temperature, battery_level, mem_used_percent, data, recorded_at
	FROM history
	WHERE recorded_at >= ?
	ORDER BY recorded_at DESC, id DESC
	LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, from, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	samples := []domain.HistorySample{}
	for rows.Next() {
		var (
			s    domain.HistorySample
			data string
			at   int64
		)
		if err := rows.Scan(&s.ID, &s.CPULoad, &s.GPUBusy, &s.CPUTemperature, &s.BatteryLevel, &s.MemUsedPercent, &data, &at); err != nil {
			return nil, 0, err
		}
		if err := codec.JSON.UnmarshalFromString(data, &s.Data); err != nil {
			return nil, 0, fmt.Errorf("failed to decode history sample %d: %w", s.ID, err)
		}
		s.RecordedAt = time.Unix(0, at).UTC()
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return samples, total, nil
}

func (r *HistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM history WHERE recorded_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old history: %w", err)
	}
	return res.RowsAffected()
}
