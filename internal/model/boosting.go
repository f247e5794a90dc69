package model

// BoostConfig configures gradient boosting.
type BoostConfig struct {
	Stages         int
	MaxDepth       int
	LearningRate   float64
	MinSamplesLeaf int
}

// GradientBoosting fits shallow trees to residuals under squared loss.
type GradientBoosting struct {
	config BoostConfig
}

// NewGradientBoosting creates a new gradient boosting regressor.
func NewGradientBoosting(cfg BoostConfig) *GradientBoosting {
	if cfg.Stages <= 0 {
		cfg.Stages = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.1
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = 1
	}
	return &GradientBoosting{config: cfg}
}

// Name returns the model name.
func (g *GradientBoosting) Name() string {
	return ModelTypeGradientBoosting.DisplayName()
}

// Type returns the model type.
func (g *GradientBoosting) Type() ModelType {
	return ModelTypeGradientBoosting
}

// Fit starts from the target mean and adds Stages shrunken trees.
func (g *GradientBoosting) Fit(x [][]float64, y []float64) (Fitted, error) {
	width, err := checkTrainingSet(x, y)
	if err != nil {
		return nil, err
	}

	n := len(x)
	var init float64
	for _, v := range y {
		init += v
	}
	init /= float64(n)

	current := make([]float64, n)
	residual := make([]float64, n)
	all := make([]int, n)
	for i := range current {
		current[i] = init
		all[i] = i
	}

	params := treeParams{maxDepth: g.config.MaxDepth, minSamplesLeaf: g.config.MinSamplesLeaf}
	fit := &BoostFit{
		Init:         init,
		LearningRate: g.config.LearningRate,
		Trees:        make([]Tree, 0, g.config.Stages),
		Width:        width,
	}
	importance := make([]float64, width)

	for stage := 0; stage < g.config.Stages; stage++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}
		tree, gain := growTree(x, residual, all, params)
		fit.Trees = append(fit.Trees, tree)
		for j, v := range normalize(gain) {
			importance[j] += v
		}
		for i, row := range x {
			current[i] += g.config.LearningRate * tree.Evaluate(row)
		}
	}
	fit.Importance = normalize(importance)

	return fit, nil
}

// BoostFit is a trained gradient boosting ensemble.
type BoostFit struct {
	Init         float64
	LearningRate float64
	Trees        []Tree
	Width        int
	Importance   []float64
}

// Name returns the model name.
func (f *BoostFit) Name() string {
	return ModelTypeGradientBoosting.DisplayName()
}

// Type returns the model type.
func (f *BoostFit) Type() ModelType {
	return ModelTypeGradientBoosting
}

// Predict sums the shrunken stage outputs.
func (f *BoostFit) Predict(x []float64) float64 {
	y := f.Init
	for i := range f.Trees {
		y += f.LearningRate * f.Trees[i].Evaluate(x)
	}
	return y
}

// FeatureImportances returns mean impurity decrease across stages.
func (f *BoostFit) FeatureImportances() []float64 {
	return append([]float64(nil), f.Importance...)
}

// Features returns the expected input width.
func (f *BoostFit) Features() int {
	return f.Width
}
