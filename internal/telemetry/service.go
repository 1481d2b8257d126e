// Package telemetry is the single entry point to every metric family.
// All query methods are total: unreadable sources turn into documented
// defaults, never errors.
package telemetry

import (
	"fmt"

	"socprobe/internal/catalog"
	"socprobe/internal/collector"
	"socprobe/internal/collector/cpu"
	"socprobe/internal/collector/disk"
	"socprobe/internal/collector/gpu"
	"socprobe/internal/collector/memory"
	"socprobe/internal/collector/network"
	"socprobe/internal/collector/power"
	"socprobe/internal/collector/system"
	"socprobe/internal/collector/thermal"
	"socprobe/internal/command"
	"socprobe/internal/config"
	"socprobe/internal/delta"
	"socprobe/internal/domain"
	"socprobe/internal/logger"
	"socprobe/internal/props"
	"socprobe/internal/sysfs"
)

type Service struct {
	env *collector.Env

	cpu     *cpu.Collector
	gpu     *gpu.Collector
	memory  *memory.Collector
	power   *power.Collector
	thermal *thermal.Collector
	disk    *disk.Collector
	network *network.Collector
	system  *system.Collector
}

// NewService wires a service from configuration. It fails only when a
// catalog override file is configured and cannot be loaded.
func NewService(cfg *config.Config, log logger.Logger) (*Service, error) {
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		override, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat.Merge(override)
		log.Info("catalog override loaded", "file", cfg.CatalogFile, "keys", len(override.Keys()))
	}

	src := sysfs.NewFileSource(cfg.SysfsRoot)
	runner := command.NewExecRunner(cfg.CommandTimeout)

	env := collector.NewEnv(sysfs.NewReader(src), delta.NewEngine(), cat, log.With("component", "collector"))
	env.Runner = runner
	env.Props = props.New(src, cat.Paths("props.files"), runner)
	env.Root = cfg.SysfsRoot
	if cfg.CacheTTL > 0 {
		env.NormalTTL = cfg.CacheTTL
	}
	if cfg.LoadMinInterval > 0 {
		env.LoadMinInterval = cfg.LoadMinInterval
	}

	return New(env), nil
}

// New builds a service over an existing environment.
func New(env *collector.Env) *Service {
	return &Service{
		env:     env,
		cpu:     cpu.NewCollector(env),
		gpu:     gpu.NewCollector(env),
		memory:  memory.NewCollector(env),
		power:   power.NewCollector(env),
		thermal: thermal.NewCollector(env),
		disk:    disk.NewCollector(env),
		network: network.NewCollector(env),
		system:  system.NewCollector(env),
	}
}

func (s *Service) CPU() *cpu.Collector         { return s.cpu }
func (s *Service) GPU() *gpu.Collector         { return s.gpu }
func (s *Service) Memory() *memory.Collector   { return s.memory }
func (s *Service) Power() *power.Collector     { return s.power }
func (s *Service) Thermal() *thermal.Collector { return s.thermal }
func (s *Service) Disk() *disk.Collector       { return s.disk }
func (s *Service) Network() *network.Collector { return s.network }
func (s *Service) System() *system.Collector   { return s.system }

// Prop looks up a system property, "" when unset.
func (s *Service) Prop(key string) string {
	v, _ := s.env.Prop(key)
	return v
}

func (s *Service) Snapshot() domain.Snapshot {
	th := s.thermal.Collect()

	cpuInfo := s.cpu.Collect()
	cpuInfo.Temperature = th.CPU

	return domain.Snapshot{
		CPU:        cpuInfo,
		GPU:        s.gpu.Collect(),
		Memory:     s.memory.Collect(),
		Power:      s.power.Collect(),
		Thermal:    th,
		Disk:       s.disk.Collect(),
		Network:    s.network.Collect(),
		System:     s.system.Collect(),
		RecordedAt: s.env.Clock().UTC(),
	}
}

// CPUInfo is the cpu family with the primary zone temperature filled in.
func (s *Service) CPUInfo() domain.CPUInfo {
	info := s.cpu.Collect()
	info.Temperature = s.thermal.CPUTemperature()
	return info
}

func (s *Service) Stats() sysfs.Stats {
	return s.env.FS.Stats()
}

// Reset drops cached values, resolved paths, counter baselines and
// every memoized detection.
func (s *Service) Reset() {
	s.env.FS.Reset()
	s.env.Delta.Reset()
	if s.env.Props != nil {
		s.env.Props.Reset()
	}

	s.cpu.Reset()
	s.gpu.Reset()
	s.power.Reset()
	s.thermal.Reset()
	s.system.Reset()

	s.env.Log.Debug("telemetry state reset")
}
