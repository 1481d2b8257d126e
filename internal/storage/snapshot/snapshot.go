package snapshot

import "socprobe/internal/domain"

type SnapshotStore struct {
	Store[domain.Snapshot]
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}
