package dataset

import (
	"fmt"
	"math"
)

// Feature names in model input order.
const (
	FeatureAttendance    = "Attendance"
	FeatureStudyHours    = "StudyHours"
	FeatureInternalMarks = "InternalMarks"
)

// FeatureNames lists the model inputs in the order Observation.Vector emits them.
var FeatureNames = []string{FeatureAttendance, FeatureStudyHours, FeatureInternalMarks}

// NumFeatures is the width of every feature vector.
const NumFeatures = 3

// Observation holds the three signals observed for one student.
type Observation struct {
	Attendance    float64 `json:"attendance" csv:"Attendance"`
	StudyHours    float64 `json:"study_hours" csv:"StudyHours"`
	InternalMarks float64 `json:"internal_marks" csv:"InternalMarks"`
}

// NewObservation creates an observation from raw values.
func NewObservation(attendance, studyHours, internalMarks float64) Observation {
	return Observation{
		Attendance:    attendance,
		StudyHours:    studyHours,
		InternalMarks: internalMarks,
	}
}

// Vector returns the observation as a feature vector.
func (o Observation) Vector() []float64 {
	return []float64{o.Attendance, o.StudyHours, o.InternalMarks}
}

// Value returns the named feature.
func (o Observation) Value(feature string) (float64, bool) {
	switch feature {
	case FeatureAttendance:
		return o.Attendance, true
	case FeatureStudyHours:
		return o.StudyHours, true
	case FeatureInternalMarks:
		return o.InternalMarks, true
	}
	return 0, false
}

// Validate checks every field against its documented domain.
func (o Observation) Validate(limits Limits) error {
	fields := []struct {
		name  string
		value float64
		max   float64
	}{
		{FeatureAttendance, o.Attendance, limits.MaxAttendance},
		{FeatureStudyHours, o.StudyHours, limits.MaxStudyHours},
		{FeatureInternalMarks, o.InternalMarks, limits.MaxInternalMarks},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 || f.value > f.max {
			return &InvalidInputError{Field: f.name, Value: f.value, Min: 0, Max: f.max}
		}
	}
	return nil
}

// LabeledObservation is an observation with its known final marks.
type LabeledObservation struct {
	Attendance    float64 `csv:"Attendance"`
	StudyHours    float64 `csv:"StudyHours"`
	InternalMarks float64 `csv:"InternalMarks"`
	FinalMarks    float64 `csv:"FinalMarks"`
}

// Observation returns the unlabeled part of the row.
func (l LabeledObservation) Observation() Observation {
	return NewObservation(l.Attendance, l.StudyHours, l.InternalMarks)
}

// Limits bounds the accepted range of each raw input. Lower bounds are zero.
type Limits struct {
	MaxAttendance    float64 `yaml:"max_attendance" json:"max_attendance"`
	MaxStudyHours    float64 `yaml:"max_study_hours" json:"max_study_hours"`
	MaxInternalMarks float64 `yaml:"max_internal_marks" json:"max_internal_marks"`
}

// DefaultLimits returns the documented input domain.
func DefaultLimits() Limits {
	return Limits{
		MaxAttendance:    100,
		MaxStudyHours:    24,
		MaxInternalMarks: 30,
	}
}

// InvalidInputError reports an observation field outside its domain.
type InvalidInputError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s=%v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// Matrix splits labeled rows into feature vectors and targets.
func Matrix(rows []LabeledObservation) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Observation().Vector()
		y[i] = r.FinalMarks
	}
	return x, y
}
