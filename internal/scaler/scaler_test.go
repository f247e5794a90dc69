package scaler

import (
	"errors"
	"math"
	"testing"
)

var names = []string{"Attendance", "StudyHours", "InternalMarks"}

func sampleRows() [][]float64 {
	return [][]float64{
		{60, 1, 10},
		{70, 2, 15},
		{80, 3, 20},
		{90, 4, 25},
	}
}

func TestFit(t *testing.T) {
	s, err := Fit(sampleRows(), names)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}

	expectedMean := []float64{75, 2.5, 17.5}
	// Population std of {60,70,80,90} = sqrt(125)
	expectedScale := []float64{math.Sqrt(125), math.Sqrt(1.25), math.Sqrt(31.25)}

	for j := range names {
		if math.Abs(s.Mean[j]-expectedMean[j]) > 1e-9 {
			t.Errorf("mean[%d]: expected %v, got %v", j, expectedMean[j], s.Mean[j])
		}
		if math.Abs(s.Scale[j]-expectedScale[j]) > 1e-9 {
			t.Errorf("scale[%d]: expected %v, got %v", j, expectedScale[j], s.Scale[j])
		}
	}
}

func TestFit_ZeroVariance(t *testing.T) {
	rows := [][]float64{
		{60, 2, 10},
		{70, 2, 15},
		{80, 2, 20},
	}

	_, err := Fit(rows, names)
	var zv *ZeroVarianceError
	if !errors.As(err, &zv) {
		t.Fatalf("expected ZeroVarianceError, got %v", err)
	}
	if zv.Feature != "StudyHours" {
		t.Errorf("expected StudyHours, got %s", zv.Feature)
	}
}

func TestFit_SingleRow(t *testing.T) {
	_, err := Fit([][]float64{{60, 2, 10}}, names)
	var zv *ZeroVarianceError
	if !errors.As(err, &zv) {
		t.Fatalf("expected ZeroVarianceError for a single row, got %v", err)
	}
}

func TestFit_InvalidInput(t *testing.T) {
	if _, err := Fit(nil, names); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := Fit([][]float64{{1, 2}}, names); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestTransform(t *testing.T) {
	s, err := Fit(sampleRows(), names)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}

	scaled, err := s.Transform([]float64{75, 2.5, 17.5})
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	for j, v := range scaled {
		if math.Abs(v) > 1e-12 {
			t.Errorf("feature %d: expected 0 at the mean, got %v", j, v)
		}
	}

	scaled, _ = s.Transform([]float64{75 + math.Sqrt(125), 2.5, 17.5})
	if math.Abs(scaled[0]-1) > 1e-12 {
		t.Errorf("expected one standard deviation, got %v", scaled[0])
	}
}

func TestTransform_UsesFittedParameters(t *testing.T) {
	s, _ := Fit(sampleRows(), names)

	first, _ := s.Transform([]float64{100, 6, 30})
	// Transforming other vectors must not change the captured statistics.
	s.TransformAll([][]float64{{0, 0, 0}, {50, 5, 5}})
	second, _ := s.Transform([]float64{100, 6, 30})

	for j := range first {
		if first[j] != second[j] {
			t.Errorf("feature %d changed between calls: %v vs %v", j, first[j], second[j])
		}
	}
}

func TestTransform_WrongWidth(t *testing.T) {
	s, _ := Fit(sampleRows(), names)

	if _, err := s.Transform([]float64{1, 2}); err == nil {
		t.Error("expected width error")
	}
	if _, err := s.InverseTransform([]float64{1}); err == nil {
		t.Error("expected width error")
	}
	if _, err := s.TransformAll([][]float64{{1, 2, 3}, {1}}); err == nil {
		t.Error("expected width error")
	}
}

func TestRoundTrip(t *testing.T) {
	s, _ := Fit(sampleRows(), names)

	for _, x := range [][]float64{{65, 1.5, 12}, {88, 3.7, 24}, {75, 2, 20}} {
		once, err := s.Transform(x)
		if err != nil {
			t.Fatalf("Transform error: %v", err)
		}
		raw, err := s.InverseTransform(once)
		if err != nil {
			t.Fatalf("InverseTransform error: %v", err)
		}
		twice, _ := s.Transform(raw)

		for j := range once {
			if math.Abs(once[j]-twice[j]) > 1e-9 {
				t.Errorf("round trip mismatch for %v at %d: %v vs %v", x, j, once[j], twice[j])
			}
		}
	}
}

func TestMeanOf(t *testing.T) {
	s, _ := Fit(sampleRows(), names)

	mean, ok := s.MeanOf("InternalMarks")
	if !ok || mean != 17.5 {
		t.Errorf("expected 17.5, got %v (%v)", mean, ok)
	}
	if _, ok := s.MeanOf("Unknown"); ok {
		t.Error("expected unknown feature to be missing")
	}
}

func TestValidate(t *testing.T) {
	s, _ := Fit(sampleRows(), names)
	if err := s.Validate(); err != nil {
		t.Errorf("fitted scaler should be valid: %v", err)
	}

	tests := []struct {
		name   string
		scaler *Scaler
	}{
		{"empty", &Scaler{}},
		{"zero scale", &Scaler{Features: []string{"a"}, Mean: []float64{1}, Scale: []float64{0}}},
		{"negative scale", &Scaler{Features: []string{"a"}, Mean: []float64{1}, Scale: []float64{-1}}},
		{"shape mismatch", &Scaler{Features: []string{"a", "b"}, Mean: []float64{1}, Scale: []float64{1}}},
		{"nan mean", &Scaler{Features: []string{"a"}, Mean: []float64{math.NaN()}, Scale: []float64{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.scaler.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
