package sysfs

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Handle is a verified attribute path together with the logical metric
// it stands for.
type Handle struct {
	Metric string
	Path   string
}

// Resolver picks the first existing path from an ordered candidate list.
// Hits are remembered for the life of the resolver; misses are probed
// again on the next call.
type Resolver struct {
	src Source

	mu       sync.RWMutex
	resolved map[uint64]Handle
}

func NewResolver(src Source) *Resolver {
	return &Resolver{
		src:      src,
		resolved: make(map[uint64]Handle),
	}
}

func (r *Resolver) Resolve(metric string, candidates []string) (Handle, bool) {
	if len(candidates) == 0 {
		return Handle{}, false
	}

	key := listKey(candidates)

	r.mu.RLock()
	h, ok := r.resolved[key]
	r.mu.RUnlock()
	if ok {
		return h, true
	}

	for _, p := range candidates {
		if !r.src.Exists(p) {
			continue
		}

		h = Handle{Metric: metric, Path: p}

		r.mu.Lock()
		if prev, ok := r.resolved[key]; ok {
			h = prev
		} else {
			r.resolved[key] = h
		}
		r.mu.Unlock()

		return h, true
	}

	return Handle{}, false
}

func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resolved)
}

func (r *Resolver) Reset() {
	r.mu.Lock()
	r.resolved = make(map[uint64]Handle)
	r.mu.Unlock()
}

func listKey(candidates []string) uint64 {
	d := xxhash.New()
	for _, c := range candidates {
		d.WriteString(c)
		d.Write([]byte{0})
	}
	return d.Sum64()
}
