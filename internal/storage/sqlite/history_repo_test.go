package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"socprobe/internal/domain"
	"socprobe/internal/logger"
)

func newRepo(t *testing.T) domain.HistoryRepository {
	t.Helper()

	db, err := NewSqliteDB(filepath.Join(t.TempDir(), "history.db"), logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewHistoryRepository(db)
}

func TestHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		snap := domain.Snapshot{
			CPU:        domain.CPUInfo{Model: "SM8550", Load: domain.CPULoad{Total: float64(i * 10)}},
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
		s := domain.NewHistorySample(snap)
		if err := repo.Insert(ctx, &s); err != nil {
			t.Fatal(err)
		}
		if s.ID == 0 {
			t.Fatal("Insert did not assign an id")
		}
	}

	got, total, err := repo.List(ctx, base.Add(time.Minute), 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 || len(got) != 2 {
		t.Fatalf("List() = %d rows of %d total", len(got), total)
	}
	if got[0].CPULoad != 40 || got[1].CPULoad != 30 {
		t.Errorf("order = %v, %v; want newest first", got[0].CPULoad, got[1].CPULoad)
	}
	if got[0].Data.CPU.Model != "SM8550" || !got[0].RecordedAt.Equal(base.Add(4*time.Minute)) {
		t.Errorf("sample = %+v", got[0])
	}
}

func TestDeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 3 {
		s := domain.NewHistorySample(domain.Snapshot{RecordedAt: base.Add(time.Duration(i) * time.Hour)})
		if err := repo.Insert(ctx, &s); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.DeleteOlderThan(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("deleted %d rows, want 2", n)
	}

	_, total, err := repo.List(ctx, time.Time{}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("%d rows left, want 1", total)
	}
}
