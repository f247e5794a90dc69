// Package training runs the model selection pipeline and builds the
// scoring artifact.
package training

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/evaluation"
	"github.com/indhiran08-coder/student-performance-ai/internal/model"
	"github.com/indhiran08-coder/student-performance-ai/internal/scaler"
)

// Options configures a training run.
type Options struct {
	TestSize   float64
	Seed       uint64
	Folds      int
	Precision  int
	Select     evaluation.SelectOptions
	Candidates []model.ModelType
	Model      model.Config
}

// DefaultOptions returns the default training options.
func DefaultOptions() Options {
	return Options{
		TestSize:  0.2,
		Seed:      42,
		Folds:     5,
		Precision: 2,
		Select: evaluation.SelectOptions{
			MaxDivergence: evaluation.DefaultMaxDivergence,
		},
		Candidates: model.AllTypes,
		Model:      model.DefaultConfig(),
	}
}

// Report describes a finished run.
type Report struct {
	RunID     uuid.UUID
	Results   []evaluation.Result
	Selection *evaluation.Selection
	Artifact  *artifact.Artifact
	TrainSize int
	TestSize  int
	Duration  time.Duration
}

// Pipeline trains every candidate on one split and keeps the best.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewPipeline creates a new training pipeline.
func NewPipeline(opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Run executes split, scaling, evaluation and selection. The returned
// artifact is not persisted.
func (p *Pipeline) Run(ctx context.Context, rows []dataset.LabeledObservation) (*Report, error) {
	start := p.now()
	runID := uuid.New()
	logger := p.logger.With("run_id", runID.String())

	train, test, err := dataset.Split(rows, p.opts.TestSize, p.opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}
	logger.Info("dataset split", "rows", len(rows), "train", len(train), "test", len(test))

	trainX, trainY := dataset.Matrix(train)
	testX, testY := dataset.Matrix(test)

	// Fitted on the training split only.
	sc, err := scaler.Fit(trainX, dataset.FeatureNames)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	split := evaluation.Split{TrainY: trainY, TestY: testY}
	if split.TrainX, err = sc.TransformAll(trainX); err != nil {
		return nil, fmt.Errorf("scale train split: %w", err)
	}
	if split.TestX, err = sc.TransformAll(testX); err != nil {
		return nil, fmt.Errorf("scale test split: %w", err)
	}

	regressors, err := model.NewFactory(p.opts.Model).Candidates(p.opts.Candidates)
	if err != nil {
		return nil, err
	}

	evaluator := evaluation.NewEvaluator(p.opts.Folds, p.opts.Precision, logger)
	results, fitted, err := evaluator.EvaluateAll(ctx, regressors, split)
	if err != nil {
		return nil, fmt.Errorf("evaluate candidates: %w", err)
	}

	sel, err := evaluation.Select(results, p.opts.Select)
	if sel != nil {
		for _, f := range sel.Flags {
			logger.Warn("cross-validation disagrees with held-out score",
				"model", f.Model,
				"r2", f.R2,
				"cv", f.CVScore,
				"divergence", f.Divergence,
			)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("select model: %w", err)
	}

	best := fitted[sel.Index]
	a := &artifact.Artifact{
		Model:  best,
		Scaler: sc,
		Meta: artifact.Metadata{
			RunID:              runID,
			ModelName:          best.Name(),
			ModelType:          best.Type(),
			TrainedAt:          p.now().UTC(),
			TrainSize:          len(train),
			TestSize:           len(test),
			Results:            results,
			FeatureNames:       append([]string(nil), dataset.FeatureNames...),
			FeatureImportances: best.FeatureImportances(),
		},
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("build artifact: %w", err)
	}

	report := &Report{
		RunID:     runID,
		Results:   results,
		Selection: sel,
		Artifact:  a,
		TrainSize: len(train),
		TestSize:  len(test),
		Duration:  p.now().Sub(start),
	}

	logger.Info("training complete",
		"best", sel.Best.Model,
		"r2", sel.Best.R2,
		"mae", sel.Best.MAE,
		"duration", report.Duration,
	)
	return report, nil
}
