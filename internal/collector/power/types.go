package power

import (
	"sync"
	"time"

	"socprobe/internal/collector"
)

const unknownHealth = "Unknown"

type Collector struct {
	env *collector.Env

	mu   sync.Mutex
	flow chargeSample
}

type chargeSample struct {
	counter int64
	at      time.Time
	rate    float64
	set     bool
}
