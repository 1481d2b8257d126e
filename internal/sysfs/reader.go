package sysfs

import "time"

// Reader bundles the source, resolver and cache that every collector
// shares.
type Reader struct {
	src      Source
	resolver *Resolver
	cache    *Cache
}

func NewReader(src Source, opts ...Option) *Reader {
	return &Reader{
		src:      src,
		resolver: NewResolver(src),
		cache:    NewCache(src, opts...),
	}
}

func (r *Reader) Source() Source      { return r.src }
func (r *Reader) Resolver() *Resolver { return r.resolver }
func (r *Reader) Cache() *Cache       { return r.cache }

func (r *Reader) Exists(path string) bool {
	return r.src.Exists(path)
}

// Raw reads an attribute without caching.
func (r *Reader) Raw(path string) (string, bool) {
	return r.src.Read(path)
}

func (r *Reader) File(path string, limit int) ([]byte, bool) {
	return r.src.ReadFile(path, limit)
}

func (r *Reader) String(path string, ttl time.Duration) (string, bool) {
	return r.cache.Get(path, ttl)
}

func (r *Reader) Int(path string, ttl time.Duration) (int64, bool) {
	return r.cache.Int(path, ttl)
}

func (r *Reader) Float(path string, ttl time.Duration) (float64, bool) {
	return r.cache.Float(path, ttl)
}

func (r *Reader) Fields(path string, ttl time.Duration) ([]string, bool) {
	return r.cache.Fields(path, ttl)
}

func (r *Reader) Resolve(metric string, candidates []string) (Handle, bool) {
	return r.resolver.Resolve(metric, candidates)
}

// Lookup resolves the first existing candidate and reads it through the
// cache.
func (r *Reader) Lookup(metric string, candidates []string, ttl time.Duration) (string, bool) {
	h, ok := r.resolver.Resolve(metric, candidates)
	if !ok {
		return "", false
	}
	return r.cache.Get(h.Path, ttl)
}

func (r *Reader) LookupInt(metric string, candidates []string, ttl time.Duration) (int64, bool) {
	v, ok := r.Lookup(metric, candidates, ttl)
	if !ok {
		return 0, false
	}
	return ParseInt(v)
}

func (r *Reader) Stats() Stats {
	return r.cache.Stats()
}

// Reset drops cached values and resolved paths.
func (r *Reader) Reset() {
	r.cache.Clear()
	r.resolver.Reset()
}
