// Package evaluation scores candidate regressors on a shared train/test
// split and selects the winner.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/model"
)

// ErrNonDeterministic is returned when a fitted model predicts differently
// for the same input.
var ErrNonDeterministic = errors.New("model predictions are not deterministic")

// Split holds scaled train and test matrices shared by every candidate.
type Split struct {
	TrainX [][]float64
	TrainY []float64
	TestX  [][]float64
	TestY  []float64
}

func (s Split) validate() error {
	if len(s.TrainX) == 0 || len(s.TestX) == 0 {
		return errors.New("split has an empty side")
	}
	if len(s.TrainX) != len(s.TrainY) || len(s.TestX) != len(s.TestY) {
		return errors.New("split rows and targets differ in length")
	}
	return nil
}

// Result is the rounded scorecard of one candidate.
type Result struct {
	Model      string          `json:"model"`
	Type       model.ModelType `json:"type"`
	MAE        float64         `json:"mae"`
	RMSE       float64         `json:"rmse"`
	R2         float64         `json:"r2"`
	CVScore    float64         `json:"cv_score"`
	Divergence float64         `json:"divergence"`
}

// Evaluator fits candidates and computes held-out and cross-validated scores.
type Evaluator struct {
	folds     int
	precision int
	logger    *slog.Logger
}

// NewEvaluator creates an evaluator. folds < 2 falls back to 5 and a
// negative precision disables rounding.
func NewEvaluator(folds, precision int, logger *slog.Logger) *Evaluator {
	if folds < 2 {
		folds = 5
	}
	return &Evaluator{
		folds:     folds,
		precision: precision,
		logger:    logger,
	}
}

// Evaluate fits r on the training split, scores it on the test split and
// cross-validates it on the training split only.
func (e *Evaluator) Evaluate(r model.Regressor, s Split) (Result, model.Fitted, error) {
	if err := s.validate(); err != nil {
		return Result{}, nil, err
	}

	fitted, err := r.Fit(s.TrainX, s.TrainY)
	if err != nil {
		return Result{}, nil, fmt.Errorf("fit %s: %w", r.Name(), err)
	}

	predicted := model.PredictAll(fitted, s.TestX)
	again := model.PredictAll(fitted, s.TestX)
	for i := range predicted {
		if math.Float64bits(predicted[i]) != math.Float64bits(again[i]) {
			return Result{}, nil, fmt.Errorf("%s: %w", r.Name(), ErrNonDeterministic)
		}
	}

	cv, err := e.crossValidate(r, s.TrainX, s.TrainY)
	if err != nil {
		return Result{}, nil, fmt.Errorf("cross-validate %s: %w", r.Name(), err)
	}

	r2 := R2(predicted, s.TestY)
	result := Result{
		Model:      r.Name(),
		Type:       r.Type(),
		MAE:        Round(MAE(predicted, s.TestY), e.precision),
		RMSE:       Round(RMSE(predicted, s.TestY), e.precision),
		R2:         Round(r2, e.precision),
		CVScore:    Round(cv, e.precision),
		Divergence: Round(math.Abs(cv-r2), e.precision),
	}

	e.logger.Debug("candidate evaluated",
		"model", result.Model,
		"mae", result.MAE,
		"rmse", result.RMSE,
		"r2", result.R2,
		"cv", result.CVScore,
	)

	return result, fitted, nil
}

// EvaluateAll evaluates every regressor on the same split, in order.
func (e *Evaluator) EvaluateAll(ctx context.Context, regressors []model.Regressor, s Split) ([]Result, []model.Fitted, error) {
	results := make([]Result, 0, len(regressors))
	fitted := make([]model.Fitted, 0, len(regressors))

	for _, r := range regressors {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		res, f, err := e.Evaluate(r, s)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, res)
		fitted = append(fitted, f)
	}

	return results, fitted, nil
}

func (e *Evaluator) crossValidate(r model.Regressor, x [][]float64, y []float64) (float64, error) {
	folds, err := dataset.KFold(len(x), e.folds)
	if err != nil {
		return 0, err
	}

	var total float64
	for i, fold := range folds {
		trainX, trainY := pick(x, y, fold.Train)
		testX, testY := pick(x, y, fold.Test)

		f, err := r.Fit(trainX, trainY)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", i+1, err)
		}
		total += R2(model.PredictAll(f, testX), testY)
	}
	return total / float64(len(folds)), nil
}

func pick(x [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	px := make([][]float64, len(idx))
	py := make([]float64, len(idx))
	for i, j := range idx {
		px[i] = x[j]
		py[i] = y[j]
	}
	return px, py
}
