package monitor

import (
	"log/slog"
	"sync"
	"time"
)

// Collector samples every monitor on demand. Samples younger than ttl are
// served from cache.
type Collector struct {
	monitors []Monitor
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	state *HostState
}

// NewCollector creates a collector over the given monitors.
func NewCollector(monitors []Monitor, ttl time.Duration, logger *slog.Logger) *Collector {
	return &Collector{
		monitors: monitors,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// DefaultMonitors returns the host monitors watching the given paths.
func DefaultMonitors(paths ...string) []Monitor {
	return []Monitor{
		NewCPUMonitor(),
		NewMemoryMonitor(),
		NewStorageMonitor(paths...),
		NewProcessMonitor(),
	}
}

// Snapshot returns the current host state. Failing monitors are logged
// and leave their section empty.
func (c *Collector) Snapshot() HostState {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.state != nil && now.Sub(c.state.Timestamp) < c.ttl {
		return c.clone()
	}

	state := &HostState{
		Timestamp: now,
		Storage:   make(StorageState),
	}

	for _, m := range c.monitors {
		data, err := m.Collect()
		if err != nil {
			c.logger.Warn("monitor collection failed",
				"monitor", m.Name(),
				"error", err,
			)
			continue
		}

		switch v := data.(type) {
		case *CPUState:
			state.CPU = *v
		case *MemoryState:
			state.Memory = *v
		case StorageState:
			state.Storage = v
		case *ProcessState:
			state.Process = *v
		}
	}

	c.state = state
	return c.clone()
}

func (c *Collector) clone() HostState {
	out := *c.state
	out.Storage = make(StorageState, len(c.state.Storage))
	for k, v := range c.state.Storage {
		out.Storage[k] = v
	}
	return out
}
