package memory

import "socprobe/internal/collector"

const (
	maxZram      = 8
	meminfoLimit = 16 * 1024
)

type Collector struct {
	env *collector.Env
}
