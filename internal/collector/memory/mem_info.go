package memory

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"socprobe/internal/delta"
	"socprobe/internal/domain"
	"socprobe/internal/units"
)

// MemInfo parses /proc/meminfo. Every field is zero when the file is
// unavailable.
func (c *Collector) MemInfo() domain.MemInfo {
	data, ok := c.env.File("memory.meminfo", meminfoLimit)
	if !ok {
		return domain.MemInfo{}
	}
	return parseMemInfo(data)
}

func parseMemInfo(data []byte) domain.MemInfo {
	var m domain.MemInfo

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		key := strings.TrimSuffix(fields[0], ":")
		valueKB, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "MemTotal":
			m.TotalKB = valueKB
		case "MemAvailable":
			m.AvailableKB = valueKB
		case "MemFree":
			m.FreeKB = valueKB
		case "Cached":
			m.CachedKB = valueKB
		case "Buffers":
			m.BuffersKB = valueKB
		case "SwapTotal":
			m.SwapTotalKB = valueKB
		case "SwapFree":
			m.SwapFreeKB = valueKB
		case "SwapCached":
			m.SwapCachedKB = valueKB
		}
	}

	if m.SwapTotalKB > m.SwapFreeKB {
		m.SwapUsedKB = m.SwapTotalKB - m.SwapFreeKB
	}

	if m.TotalKB > 0 && m.AvailableKB <= m.TotalKB {
		used := float64(m.TotalKB-m.AvailableKB) / float64(m.TotalKB) * 100
		m.UsedPercent = units.Round(delta.ClampPercent(used), 2)
	}

	return m
}
