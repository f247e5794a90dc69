// Package monitor samples host resources for the status endpoint.
package monitor

import "time"

type Monitor interface {
	Name() string
	Collect() (any, error)
}

type CPUState struct {
	UsagePercent float64 `json:"usage_percent"`
	LogicalCores int     `json:"logical_cores"`
}

type MemoryState struct {
	UsedBytes      uint64  `json:"used_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	TotalBytes     uint64  `json:"total_bytes"`
	UsagePercent   float64 `json:"usage_percent"`
}

type DiskState struct {
	Mount        string  `json:"mount"`
	FreeBytes    uint64  `json:"free_bytes"`
	TotalBytes   uint64  `json:"total_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}

// StorageState maps a watched path to the disk holding it.
type StorageState map[string]DiskState

// ProcessState describes the current process.
type ProcessState struct {
	PID        int32   `json:"pid"`
	RSSBytes   uint64  `json:"rss_bytes"`
	Threads    int32   `json:"threads"`
	CPUPercent float64 `json:"cpu_percent"`
}

type HostState struct {
	CPU       CPUState     `json:"cpu"`
	Memory    MemoryState  `json:"memory"`
	Storage   StorageState `json:"storage"`
	Process   ProcessState `json:"process"`
	Timestamp time.Time    `json:"timestamp"`
}
