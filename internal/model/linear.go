package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression fits ordinary least squares with an intercept.
// Prediction: y = b0 + b1*x1 + ... + bn*xn
type LinearRegression struct{}

// NewLinearRegression creates a new linear regression regressor.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Name returns the model name.
func (r *LinearRegression) Name() string {
	return ModelTypeLinear.DisplayName()
}

// Type returns the model type.
func (r *LinearRegression) Type() ModelType {
	return ModelTypeLinear
}

// Fit solves the least squares problem via QR decomposition.
func (r *LinearRegression) Fit(x [][]float64, y []float64) (Fitted, error) {
	width, err := checkTrainingSet(x, y)
	if err != nil {
		return nil, err
	}
	if len(x) < width+1 {
		return nil, fmt.Errorf("linear regression needs at least %d rows, got %d", width+1, len(x))
	}

	n := len(x)
	design := mat.NewDense(n, width+1, nil)
	for i, row := range x {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(n, append([]float64(nil), y...))

	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("features are collinear: %w", err)
		}
		return nil, fmt.Errorf("failed to solve least squares: %w", err)
	}

	fit := &LinearFit{
		Intercept: beta.AtVec(0),
		Coef:      make([]float64, width),
	}
	for j := range fit.Coef {
		fit.Coef[j] = beta.AtVec(j + 1)
	}
	return fit, nil
}

// LinearFit is a trained linear model.
type LinearFit struct {
	Intercept float64
	Coef      []float64
}

// Name returns the model name.
func (f *LinearFit) Name() string {
	return ModelTypeLinear.DisplayName()
}

// Type returns the model type.
func (f *LinearFit) Type() ModelType {
	return ModelTypeLinear
}

// Predict evaluates the linear function.
func (f *LinearFit) Predict(x []float64) float64 {
	y := f.Intercept
	for j, c := range f.Coef {
		y += c * x[j]
	}
	return y
}

// FeatureImportances returns normalized absolute coefficients. Inputs are
// standardized, so magnitudes are comparable across features.
func (f *LinearFit) FeatureImportances() []float64 {
	abs := make([]float64, len(f.Coef))
	for j, c := range f.Coef {
		abs[j] = math.Abs(c)
	}
	return normalize(abs)
}

// Features returns the expected input width.
func (f *LinearFit) Features() int {
	return len(f.Coef)
}

func checkTrainingSet(x [][]float64, y []float64) (int, error) {
	if len(x) == 0 {
		return 0, errors.New("empty training set")
	}
	if len(x) != len(y) {
		return 0, fmt.Errorf("got %d rows but %d targets", len(x), len(y))
	}
	width := len(x[0])
	if width == 0 {
		return 0, errors.New("training rows have no features")
	}
	for i, row := range x {
		if len(row) != width {
			return 0, fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
		}
	}
	return width, nil
}
