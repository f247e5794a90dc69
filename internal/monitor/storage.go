package monitor

import (
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"
)

// StorageMonitor reports free space on the disks holding the artifact
// directory and the history log.
type StorageMonitor struct {
	paths []string
}

func NewStorageMonitor(paths ...string) *StorageMonitor {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return &StorageMonitor{paths: paths}
}

func (m *StorageMonitor) Name() string {
	return "storage"
}

func (m *StorageMonitor) Collect() (any, error) {
	state := make(StorageState)

	for _, path := range m.paths {
		usage, err := disk.Usage(existingAncestor(path))
		if err != nil {
			// Skip paths that are not accessible
			continue
		}

		state[path] = DiskState{
			Mount:        usage.Path,
			FreeBytes:    usage.Free,
			TotalBytes:   usage.Total,
			UsagePercent: usage.UsedPercent,
		}
	}

	return state, nil
}

// existingAncestor walks up until it finds a path that exists, so a
// directory that has not been created yet still maps to its disk.
func existingAncestor(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}
