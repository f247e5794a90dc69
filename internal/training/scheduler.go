package training

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
)

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	DataPath string
	Limits   dataset.Limits
	Interval time.Duration
}

// Scheduler retrains on a fixed interval whenever the training dataset has
// changed since the last run, and persists the new artifact.
type Scheduler struct {
	pipeline *Pipeline
	store    *artifact.Store
	cfg      SchedulerConfig
	logger   *slog.Logger

	// Serializes retrains.
	trainMu sync.Mutex

	mu        sync.RWMutex
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	onTrained []func(*Report)

	// Dataset modification time seen by the last successful retrain.
	trainedMod   time.Time
	retrainCount int64
	lastRetrain  time.Time
	lastModel    string
	lastError    error
}

// NewScheduler creates a new retrain scheduler.
func NewScheduler(p *Pipeline, store *artifact.Store, cfg SchedulerConfig, logger *slog.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Scheduler{
		pipeline: p,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// OnTrained registers fn to run after every successful retrain.
func (s *Scheduler) OnTrained(fn func(*Report)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTrained = append(s.onTrained, fn)
}

// Start begins the scheduler loop. When an artifact already exists the
// current dataset counts as trained.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if s.store.Exists() {
		if mod, err := s.datasetMod(); err == nil {
			s.trainedMod = mod
		}
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.run(ctx)
	return nil
}

// Stop stops the scheduler and waits for it to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.checkAndRetrain(ctx)
		}
	}
}

func (s *Scheduler) checkAndRetrain(ctx context.Context) {
	mod, err := s.datasetMod()
	if err != nil {
		s.recordError(err)
		s.logger.Warn("dataset unavailable, skipping retrain", "path", s.cfg.DataPath, "error", err)
		return
	}

	s.mu.RLock()
	changed := mod.After(s.trainedMod)
	s.mu.RUnlock()
	if !changed {
		return
	}

	if _, err := s.retrain(ctx, mod); err != nil {
		s.logger.Error("scheduled retrain failed", "error", err)
	}
}

// ForceRetrain retrains immediately regardless of schedule.
func (s *Scheduler) ForceRetrain(ctx context.Context) (*Report, error) {
	mod, err := s.datasetMod()
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	return s.retrain(ctx, mod)
}

func (s *Scheduler) retrain(ctx context.Context, mod time.Time) (*Report, error) {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	report, err := s.train(ctx)
	if err != nil {
		s.recordError(err)
		return nil, err
	}

	s.mu.Lock()
	s.trainedMod = mod
	s.retrainCount++
	s.lastRetrain = report.Artifact.Meta.TrainedAt
	s.lastModel = report.Selection.Best.Model
	s.lastError = nil
	hooks := append(([]func(*Report))(nil), s.onTrained...)
	s.mu.Unlock()

	s.logger.Info("model retrained",
		"model", report.Selection.Best.Model,
		"r2", report.Selection.Best.R2,
		"run_id", report.RunID.String(),
	)

	for _, fn := range hooks {
		fn(report)
	}
	return report, nil
}

func (s *Scheduler) train(ctx context.Context) (*Report, error) {
	rows, err := dataset.Load(s.cfg.DataPath, s.cfg.Limits)
	if err != nil {
		return nil, err
	}
	report, err := s.pipeline.Run(ctx, rows)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(report.Artifact); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	return report, nil
}

func (s *Scheduler) datasetMod() (time.Time, error) {
	info, err := os.Stat(s.cfg.DataPath)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (s *Scheduler) recordError(err error) {
	s.mu.Lock()
	s.lastError = err
	s.mu.Unlock()
}

// SchedulerStats returns scheduler statistics.
type SchedulerStats struct {
	Running      bool      `json:"running"`
	Interval     string    `json:"interval"`
	RetrainCount int64     `json:"retrain_count"`
	LastRetrain  time.Time `json:"last_retrain,omitzero"`
	LastModel    string    `json:"last_model,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
}

// Stats returns current scheduler statistics.
func (s *Scheduler) Stats() SchedulerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := SchedulerStats{
		Running:      s.running,
		Interval:     s.cfg.Interval.String(),
		RetrainCount: s.retrainCount,
		LastRetrain:  s.lastRetrain,
		LastModel:    s.lastModel,
	}
	if s.lastError != nil {
		stats.LastError = s.lastError.Error()
	}
	return stats
}

// IsRunning returns whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
