package config

import (
	"errors"
	"fmt"

	"github.com/indhiran08-coder/student-performance-ai/internal/model"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Data.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("data: %w", err))
	}

	if err := c.Training.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("training: %w", err))
	}

	if err := c.Artifacts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("artifacts: %w", err))
	}

	if err := c.History.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("history: %w", err))
	}

	if err := c.Decision.Dashboard.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("decision.dashboard: %w", err))
	}

	if err := c.Decision.Support.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("decision.support: %w", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (d *DataConfig) Validate() error {
	var errs []error

	if d.Limits.MaxAttendance <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_attendance must be positive"))
	}
	if d.Limits.MaxStudyHours <= 0 || d.Limits.MaxStudyHours > 24 {
		errs = append(errs, fmt.Errorf("limits.max_study_hours must be between 0 and 24"))
	}
	if d.Limits.MaxInternalMarks <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_internal_marks must be positive"))
	}

	return errors.Join(errs...)
}

func (t *TrainingConfig) Validate() error {
	var errs []error

	if t.TestSize <= 0 || t.TestSize >= 1 {
		errs = append(errs, fmt.Errorf("test_size must be between 0 and 1 (exclusive), got %v", t.TestSize))
	}
	if t.Folds < 2 {
		errs = append(errs, fmt.Errorf("folds must be at least 2, got %d", t.Folds))
	}
	if t.Precision < 0 || t.Precision > 10 {
		errs = append(errs, fmt.Errorf("precision must be between 0 and 10, got %d", t.Precision))
	}
	if t.MaxDivergence <= 0 {
		errs = append(errs, fmt.Errorf("max_divergence must be positive"))
	}
	if t.RetrainIntervalSec < 0 {
		errs = append(errs, fmt.Errorf("retrain_interval_sec must be non-negative (0 = disabled)"))
	}

	if len(t.Candidates) == 0 {
		errs = append(errs, fmt.Errorf("at least one candidate is required"))
	}
	seen := make(map[string]bool)
	for _, name := range t.Candidates {
		if !model.ModelType(name).IsValid() {
			errs = append(errs, fmt.Errorf("invalid candidate: %s (valid: linear, random_forest, gradient_boosting)", name))
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate candidate: %s", name))
		}
		seen[name] = true
	}

	if err := t.ModelParams.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("model_params: %w", err))
	}

	return errors.Join(errs...)
}

func (m *ModelParamsConfig) Validate() error {
	var errs []error

	if m.NEstimators < 1 {
		errs = append(errs, fmt.Errorf("n_estimators must be at least 1"))
	}
	if m.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be non-negative (0 = unlimited)"))
	}
	if m.MinSamplesLeaf < 1 {
		errs = append(errs, fmt.Errorf("min_samples_leaf must be at least 1"))
	}
	if m.BoostingStages < 1 {
		errs = append(errs, fmt.Errorf("boosting_stages must be at least 1"))
	}
	if m.BoostingDepth < 1 {
		errs = append(errs, fmt.Errorf("boosting_depth must be at least 1"))
	}
	if m.LearningRate <= 0 || m.LearningRate > 1 {
		errs = append(errs, fmt.Errorf("learning_rate must be in (0, 1]"))
	}

	return errors.Join(errs...)
}

func (a *ArtifactsConfig) Validate() error {
	if a.Dir == "" {
		return fmt.Errorf("dir cannot be empty")
	}
	if a.ModelFile == "" || a.ScalerFile == "" {
		return fmt.Errorf("model_file and scaler_file cannot be empty")
	}
	if a.ModelFile == a.ScalerFile {
		return fmt.Errorf("model_file and scaler_file must differ")
	}
	return nil
}

func (h *HistoryConfig) Validate() error {
	if h.Enabled && h.Path == "" {
		return fmt.Errorf("path cannot be empty when history is enabled")
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", s.Port))
	}
	if s.MaxBodyBytes < 1 {
		errs = append(errs, fmt.Errorf("max_body_bytes must be positive"))
	}
	if s.ShutdownTimeoutSec < 1 {
		errs = append(errs, fmt.Errorf("shutdown_timeout_sec must be at least 1"))
	}
	if s.RateLimit.Enabled {
		if s.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.requests_per_second must be positive"))
		}
		if s.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be at least 1"))
		}
	}

	return errors.Join(errs...)
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}
