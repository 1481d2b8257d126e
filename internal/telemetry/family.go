package telemetry

import (
	"slices"

	"socprobe/internal/domain"
)

const (
	FamilyCPU         = "cpu"
	FamilyCPUClusters = "cpu/clusters"
	FamilyCPUCores    = "cpu/cores"
	FamilyCPULoad     = "cpu/load"
	FamilyGPU         = "gpu"
	FamilyMemory      = "memory"
	FamilyZram        = "zram"
	FamilyBattery     = "battery"
	FamilyPower       = "power"
	FamilyThermal     = "thermal"
	FamilyDisk        = "disk"
	FamilyNetwork     = "network"
	FamilySystem      = "system"
)

var families = []string{
	FamilyCPU, FamilyCPUClusters, FamilyCPUCores, FamilyCPULoad,
	FamilyGPU, FamilyMemory, FamilyZram, FamilyBattery, FamilyPower,
	FamilyThermal, FamilyDisk, FamilyNetwork, FamilySystem,
}

func Families() []string {
	return slices.Clone(families)
}

// Family collects one named family. Only the name can fail.
func (s *Service) Family(name string) (any, error) {
	switch name {
	case FamilyCPU:
		return s.CPUInfo(), nil
	case FamilyCPUClusters:
		return s.cpu.Clusters(), nil
	case FamilyCPUCores:
		return s.cpu.Cores(), nil
	case FamilyCPULoad:
		return s.cpu.Load(), nil
	case FamilyGPU:
		return s.gpu.Collect(), nil
	case FamilyMemory:
		return s.memory.Collect(), nil
	case FamilyZram:
		return s.memory.Zram(), nil
	case FamilyBattery:
		return s.power.Battery(), nil
	case FamilyPower:
		return s.power.Collect(), nil
	case FamilyThermal:
		return s.thermal.Collect(), nil
	case FamilyDisk:
		return s.disk.Devices(), nil
	case FamilyNetwork:
		return s.network.Collect(), nil
	case FamilySystem:
		return s.system.Collect(), nil
	}
	return nil, domain.ErrUnknownFamily
}
