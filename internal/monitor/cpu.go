package monitor

import (
	"github.com/shirou/gopsutil/v4/cpu"
)

type CPUMonitor struct{}

func NewCPUMonitor() *CPUMonitor {
	return &CPUMonitor{}
}

func (m *CPUMonitor) Name() string {
	return "cpu"
}

func (m *CPUMonitor) Collect() (any, error) {
	// Usage since the previous call; the first call reports since boot.
	percentages, err := cpu.Percent(0, false)
	if err != nil {
		return nil, err
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		return nil, err
	}

	state := &CPUState{LogicalCores: cores}
	if len(percentages) > 0 {
		state.UsagePercent = percentages[0]
	}
	return state, nil
}
