package config

import (
	"fmt"
	"time"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/evaluation"
	"github.com/indhiran08-coder/student-performance-ai/internal/model"
	"github.com/indhiran08-coder/student-performance-ai/internal/training"
)

type Config struct {
	Data      DataConfig      `yaml:"data"`
	Training  TrainingConfig  `yaml:"training"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	History   HistoryConfig   `yaml:"history"`
	Decision  DecisionConfig  `yaml:"decision"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type DataConfig struct {
	Path   string         `yaml:"path"`
	Limits dataset.Limits `yaml:"limits"`
}

// TrainingConfig holds model selection settings.
type TrainingConfig struct {
	TestSize  float64 `yaml:"test_size"`
	Seed      uint64  `yaml:"seed"`
	Folds     int     `yaml:"folds"`
	Precision int     `yaml:"precision"`

	// Largest accepted gap between CV and held-out R².
	MaxDivergence float64 `yaml:"max_divergence"`
	// Strict excludes candidates over MaxDivergence from selection.
	Strict bool `yaml:"strict"`

	// Candidate types: linear, random_forest, gradient_boosting
	Candidates []string `yaml:"candidates"`

	ModelParams ModelParamsConfig `yaml:"model_params"`

	// Seconds between dataset change checks while serving; 0 disables.
	RetrainIntervalSec int `yaml:"retrain_interval_sec"`
}

// ModelParamsConfig holds model-specific parameters.
type ModelParamsConfig struct {
	// RandomForest
	NEstimators    int `yaml:"n_estimators"`
	MaxDepth       int `yaml:"max_depth"`
	MinSamplesLeaf int `yaml:"min_samples_leaf"`

	// GradientBoosting
	BoostingStages int     `yaml:"boosting_stages"`
	BoostingDepth  int     `yaml:"boosting_depth"`
	LearningRate   float64 `yaml:"learning_rate"`
}

type ArtifactsConfig struct {
	Dir        string `yaml:"dir"`
	ModelFile  string `yaml:"model_file"`
	ScalerFile string `yaml:"scaler_file"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DecisionConfig holds the two rule sets.
type DecisionConfig struct {
	Dashboard decision.RuleSet `yaml:"dashboard"`
	Support   decision.RuleSet `yaml:"support"`
}

type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	MaxBodyBytes       int64  `yaml:"max_body_bytes"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec"`
	PIDFile            string `yaml:"pid_file"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig limits requests per client address.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSec) * time.Second
}

// RetrainInterval returns the scheduled retrain interval, zero when disabled.
func (c *Config) RetrainInterval() time.Duration {
	return time.Duration(c.Training.RetrainIntervalSec) * time.Second
}

// ModelTypes converts the configured candidate names.
func (c *Config) ModelTypes() []model.ModelType {
	types := make([]model.ModelType, len(c.Training.Candidates))
	for i, name := range c.Training.Candidates {
		types[i] = model.ModelType(name)
	}
	return types
}

// TrainingOptions builds pipeline options from the training section.
func (c *Config) TrainingOptions() training.Options {
	t := c.Training
	return training.Options{
		TestSize:  t.TestSize,
		Seed:      t.Seed,
		Folds:     t.Folds,
		Precision: t.Precision,
		Select: evaluation.SelectOptions{
			MaxDivergence: t.MaxDivergence,
			Strict:        t.Strict,
		},
		Candidates: c.ModelTypes(),
		Model: model.Config{
			Seed:           t.Seed,
			NEstimators:    t.ModelParams.NEstimators,
			MaxDepth:       t.ModelParams.MaxDepth,
			MinSamplesLeaf: t.ModelParams.MinSamplesLeaf,
			BoostingStages: t.ModelParams.BoostingStages,
			BoostingDepth:  t.ModelParams.BoostingDepth,
			LearningRate:   t.ModelParams.LearningRate,
		},
	}
}

// RuleSet returns the rule set with the given name.
func (c *Config) RuleSet(name string) (decision.RuleSet, error) {
	switch name {
	case decision.RuleSetDashboard:
		return c.Decision.Dashboard, nil
	case decision.RuleSetSupport:
		return c.Decision.Support, nil
	default:
		return decision.RuleSet{}, fmt.Errorf("unknown rule set %q (valid: %s, %s)",
			name, decision.RuleSetDashboard, decision.RuleSetSupport)
	}
}
