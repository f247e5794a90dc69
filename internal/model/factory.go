package model

import (
	"fmt"
)

// Config holds model configuration.
type Config struct {
	// Seed drives every random choice (bootstrap samples).
	Seed uint64

	// RandomForest params
	NEstimators    int
	MaxDepth       int // 0 means unlimited
	MinSamplesLeaf int

	// GradientBoosting params
	BoostingStages int
	BoostingDepth  int
	LearningRate   float64
}

// DefaultConfig returns default model configuration.
func DefaultConfig() Config {
	return Config{
		Seed:           42,
		NEstimators:    200,
		MaxDepth:       0,
		MinSamplesLeaf: 1,
		BoostingStages: 100,
		BoostingDepth:  3,
		LearningRate:   0.1,
	}
}

// Factory creates candidate regressors.
type Factory struct {
	config Config
}

// NewFactory creates a new model factory.
func NewFactory(cfg Config) *Factory {
	return &Factory{config: cfg}
}

// CreateByType creates a regressor of the specified type.
func (f *Factory) CreateByType(modelType ModelType) (Regressor, error) {
	switch modelType {
	case ModelTypeLinear:
		return NewLinearRegression(), nil

	case ModelTypeRandomForest:
		return NewRandomForest(ForestConfig{
			NEstimators:    f.config.NEstimators,
			MaxDepth:       f.config.MaxDepth,
			MinSamplesLeaf: f.config.MinSamplesLeaf,
			Seed:           f.config.Seed,
		}), nil

	case ModelTypeGradientBoosting:
		return NewGradientBoosting(BoostConfig{
			Stages:         f.config.BoostingStages,
			MaxDepth:       f.config.BoostingDepth,
			LearningRate:   f.config.LearningRate,
			MinSamplesLeaf: f.config.MinSamplesLeaf,
		}), nil

	default:
		return nil, fmt.Errorf("unknown model type: %s", modelType)
	}
}

// Candidates creates regressors in the given declaration order.
func (f *Factory) Candidates(types []ModelType) ([]Regressor, error) {
	if len(types) == 0 {
		types = AllTypes
	}

	seen := make(map[ModelType]bool, len(types))
	regressors := make([]Regressor, 0, len(types))
	for _, t := range types {
		if seen[t] {
			return nil, fmt.Errorf("duplicate candidate: %s", t)
		}
		seen[t] = true

		r, err := f.CreateByType(t)
		if err != nil {
			return nil, err
		}
		regressors = append(regressors, r)
	}
	return regressors, nil
}
