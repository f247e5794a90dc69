package model

import (
	"errors"
	"math/rand/v2"
)

// ForestConfig configures a random forest.
type ForestConfig struct {
	NEstimators    int
	MaxDepth       int
	MinSamplesLeaf int
	Seed           uint64
}

// RandomForest averages regression trees grown on bootstrap samples.
type RandomForest struct {
	config ForestConfig
}

// NewRandomForest creates a new random forest regressor.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.NEstimators <= 0 {
		cfg.NEstimators = 200
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = 1
	}
	return &RandomForest{config: cfg}
}

// Name returns the model name.
func (r *RandomForest) Name() string {
	return ModelTypeRandomForest.DisplayName()
}

// Type returns the model type.
func (r *RandomForest) Type() ModelType {
	return ModelTypeRandomForest
}

// Fit grows NEstimators trees. The bootstrap draws come from a generator
// seeded with Seed, so equal inputs give equal forests.
func (r *RandomForest) Fit(x [][]float64, y []float64) (Fitted, error) {
	width, err := checkTrainingSet(x, y)
	if err != nil {
		return nil, err
	}
	if len(x) < 2 {
		return nil, errors.New("random forest needs at least 2 rows")
	}

	rng := rand.New(rand.NewPCG(r.config.Seed, r.config.Seed))
	params := treeParams{maxDepth: r.config.MaxDepth, minSamplesLeaf: r.config.MinSamplesLeaf}

	n := len(x)
	fit := &ForestFit{
		Trees: make([]Tree, r.config.NEstimators),
		Width: width,
	}
	importance := make([]float64, width)
	sample := make([]int, n)

	for t := range fit.Trees {
		for i := range sample {
			sample[i] = rng.IntN(n)
		}
		tree, gain := growTree(x, y, sample, params)
		fit.Trees[t] = tree
		for j, g := range normalize(gain) {
			importance[j] += g
		}
	}
	fit.Importance = normalize(importance)

	return fit, nil
}

// ForestFit is a trained random forest.
type ForestFit struct {
	Trees      []Tree
	Width      int
	Importance []float64
}

// Name returns the model name.
func (f *ForestFit) Name() string {
	return ModelTypeRandomForest.DisplayName()
}

// Type returns the model type.
func (f *ForestFit) Type() ModelType {
	return ModelTypeRandomForest
}

// Predict averages all trees.
func (f *ForestFit) Predict(x []float64) float64 {
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].Evaluate(x)
	}
	return sum / float64(len(f.Trees))
}

// FeatureImportances returns mean impurity decrease across trees.
func (f *ForestFit) FeatureImportances() []float64 {
	return append([]float64(nil), f.Importance...)
}

// Features returns the expected input width.
func (f *ForestFit) Features() int {
	return f.Width
}
