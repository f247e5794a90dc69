// Package scaler implements feature standardization fitted once on training data.
package scaler

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// minScale is the smallest standard deviation accepted as non-zero variance.
const minScale = 1e-12

// ZeroVarianceError reports a training feature that is constant.
type ZeroVarianceError struct {
	Feature string
	Value   float64
}

func (e *ZeroVarianceError) Error() string {
	return fmt.Sprintf("feature %s has zero variance (constant value %v)", e.Feature, e.Value)
}

// Scaler standardizes feature vectors with parameters captured at fit time.
// Fields are exported for gob encoding.
type Scaler struct {
	Features []string
	Mean     []float64
	Scale    []float64
}

// Fit computes per-feature mean and population standard deviation.
func Fit(rows [][]float64, names []string) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, errors.New("cannot fit scaler on empty data")
	}

	width := len(names)
	if width == 0 {
		return nil, errors.New("cannot fit scaler without features")
	}

	columns := make([][]float64, width)
	for j := range columns {
		columns[j] = make([]float64, len(rows))
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
		}
		for j, v := range row {
			columns[j][i] = v
		}
	}

	s := &Scaler{
		Features: append([]string(nil), names...),
		Mean:     make([]float64, width),
		Scale:    make([]float64, width),
	}

	n := float64(len(rows))
	for j, col := range columns {
		mean, variance := stat.MeanVariance(col, nil)
		if len(col) < 2 {
			variance = 0
		}
		// MeanVariance is unbiased; standardization uses ddof=0.
		std := math.Sqrt(variance * (n - 1) / n)
		if std < minScale || math.IsNaN(std) {
			return nil, &ZeroVarianceError{Feature: names[j], Value: mean}
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}

	return s, nil
}

// Transform applies (x - mean) / scale to a single vector.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("vector has %d features, scaler expects %d", len(x), len(s.Mean))
	}

	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// TransformAll scales every row.
func (s *Scaler) TransformAll(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}

// InverseTransform maps a scaled vector back to raw units.
func (s *Scaler) InverseTransform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("vector has %d features, scaler expects %d", len(x), len(s.Mean))
	}

	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = v*s.Scale[j] + s.Mean[j]
	}
	return out, nil
}

// Width returns the number of features the scaler was fitted on.
func (s *Scaler) Width() int {
	return len(s.Mean)
}

// MeanOf returns the fitted mean of a named feature.
func (s *Scaler) MeanOf(feature string) (float64, bool) {
	for j, name := range s.Features {
		if name == feature {
			return s.Mean[j], true
		}
	}
	return 0, false
}

// Validate checks that a decoded scaler is usable.
func (s *Scaler) Validate() error {
	if len(s.Mean) == 0 {
		return errors.New("scaler has no features")
	}
	if len(s.Scale) != len(s.Mean) || len(s.Features) != len(s.Mean) {
		return fmt.Errorf("scaler shape mismatch: %d names, %d means, %d scales",
			len(s.Features), len(s.Mean), len(s.Scale))
	}
	for j, sc := range s.Scale {
		if !(sc > 0) || math.IsInf(sc, 0) {
			return fmt.Errorf("scale of %s must be positive, got %v", s.Features[j], sc)
		}
		if math.IsNaN(s.Mean[j]) || math.IsInf(s.Mean[j], 0) {
			return fmt.Errorf("mean of %s is not finite", s.Features[j])
		}
	}
	return nil
}
