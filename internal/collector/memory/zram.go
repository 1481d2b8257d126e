package memory

import (
	"strconv"
	"strings"

	"socprobe/internal/collector"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

// Zram lists the configured zram devices among zram0..zram7.
func (c *Collector) Zram() []domain.ZramDevice {
	out := []domain.ZramDevice{}

	for n := range maxZram {
		if d, ok := c.ZramDevice(n); ok {
			out = append(out, d)
		}
	}
	return out
}

// ZramDevice reports one device. A device without a disk size is not
// set up and reports false.
func (c *Collector) ZramDevice(n int) (domain.ZramDevice, bool) {
	env := c.env

	size, ok := env.LookupIntN("zram.disksize", n, collector.TTLSlow)
	if !ok || size <= 0 {
		return domain.ZramDevice{}, false
	}

	d := domain.ZramDevice{
		Name:             "zram" + strconv.Itoa(n),
		DiskSize:         uint64(size),
		Algorithm:        "unknown",
		CompressionRatio: 1,
	}

	if v, ok := env.LookupN("zram.algorithm", n, collector.TTLStatic); ok {
		d.Algorithm = selectedAlgorithm(v)
	}

	if f, ok := env.FieldsN("zram.mm_stat", n, env.NormalTTL); ok && len(f) >= 3 {
		d.OrigDataSize = parseUint(f[0])
		d.ComprDataSize = parseUint(f[1])
		d.MemUsedTotal = parseUint(f[2])
	}

	if d.ComprDataSize > 0 {
		d.CompressionRatio = units.Round(float64(d.OrigDataSize)/float64(d.ComprDataSize), 2)
	}

	return d, true
}

// selectedAlgorithm picks the bracketed entry of comp_algorithm, e.g.
// "lzo [lz4] zstd" -> "lz4".
func selectedAlgorithm(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		if j := strings.IndexByte(s[i:], ']'); j > 1 {
			return s[i+1 : i+j]
		}
		return "unknown"
	}

	if f := strings.Fields(s); len(f) == 1 {
		return f[0]
	}
	return "unknown"
}

func parseUint(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}
