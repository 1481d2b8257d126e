package sysfs_test

import (
	"strings"
	"sync"
)

// memSource is an in-memory attribute tree that counts reads.
type memSource struct {
	mu     sync.Mutex
	files  map[string]string
	reads  map[string]int
	probes int
}

func newMemSource() *memSource {
	return &memSource{files: map[string]string{}, reads: map[string]int{}}
}

func (m *memSource) set(path, v string) {
	m.mu.Lock()
	m.files[path] = v
	m.mu.Unlock()
}

func (m *memSource) remove(path string) {
	m.mu.Lock()
	delete(m.files, path)
	m.mu.Unlock()
}

func (m *memSource) readCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[path]
}

func (m *memSource) Read(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[path]++
	v, ok := m.files[path]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (m *memSource) ReadFile(path string, limit int) ([]byte, bool) {
	v, ok := m.Read(path)
	if !ok {
		return nil, false
	}
	if len(v) > limit {
		v = v[:limit]
	}
	return []byte(v), true
}

func (m *memSource) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes++
	_, ok := m.files[path]
	return ok
}
