package network

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

type netLine struct {
	iface   string
	rxBytes uint64
	txBytes uint64
}

// parseNetDev skips the two header lines and keeps the receive and
// transmit byte columns.
func parseNetDev(data []byte) []netLine {
	var out []netLine

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 0; i < 2 && scanner.Scan(); i++ {
	}

	for scanner.Scan() {
		name, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		parts := strings.Fields(rest)
		if len(parts) < 16 {
			continue
		}

		out = append(out, netLine{
			iface:   strings.TrimSpace(name),
			rxBytes: parseUint(parts[0]),
			txBytes: parseUint(parts[8]),
		})
	}

	return out
}

func parseUint(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
