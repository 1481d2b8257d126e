package disk

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"socprobe/internal/delta"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

type diskLine struct {
	sectorsRead    uint64
	sectorsWritten uint64
}

// parseDiskstats indexes lines by exact device name, so "sda" never
// matches "sda1".
func parseDiskstats(data []byte) map[string]diskLine {
	out := make(map[string]diskLine)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}

		read, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			continue
		}
		written, err := strconv.ParseUint(fields[9], 10, 64)
		if err != nil {
			continue
		}

		out[fields[2]] = diskLine{sectorsRead: read, sectorsWritten: written}
	}

	return out
}

func (c *Collector) stats(idx int, l diskLine) domain.DiskStats {
	readBytes := l.sectorsRead * sectorSize
	writeBytes := l.sectorsWritten * sectorSize

	return domain.DiskStats{
		Device:     c.env.Catalog.Paths("disk.devices")[idx],
		ReadBytes:  readBytes,
		WriteBytes: writeBytes,
		ReadSpeed:  units.Round(c.env.Delta.Throughput(delta.Key{Metric: "disk.read", Index: idx}, readBytes), 2),
		WriteSpeed: units.Round(c.env.Delta.Throughput(delta.Key{Metric: "disk.write", Index: idx}, writeBytes), 2),
	}
}
