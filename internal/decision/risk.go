package decision

import (
	"errors"
	"fmt"
)

// Risk is the coarse risk tier of a predicted score.
type Risk string

const (
	RiskLow    Risk = "LOW"
	RiskMedium Risk = "MEDIUM"
	RiskHigh   Risk = "HIGH"
)

// IsValid checks if the risk tier is valid.
func (r Risk) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// String returns string representation.
func (r Risk) String() string {
	return string(r)
}

// Band maps scores at or above Min to a risk tier and a label.
type Band struct {
	Min   float64 `yaml:"min" json:"min"`
	Risk  Risk    `yaml:"risk" json:"risk"`
	Label string  `yaml:"label" json:"label"`
}

// RiskTable is ordered from the highest band down. The last band catches
// every score below the previous bands; its Min is not consulted.
type RiskTable []Band

// Classify returns the first band whose lower bound the score reaches.
func (t RiskTable) Classify(score float64) Band {
	for _, b := range t[:len(t)-1] {
		if score >= b.Min {
			return b
		}
	}
	return t[len(t)-1]
}

// Validate checks that bands are non-empty and strictly descending.
func (t RiskTable) Validate() error {
	if len(t) == 0 {
		return errors.New("risk table has no bands")
	}

	var errs []error
	for i, b := range t {
		if !b.Risk.IsValid() {
			errs = append(errs, fmt.Errorf("band %d: invalid risk %q", i, b.Risk))
		}
		if b.Label == "" {
			errs = append(errs, fmt.Errorf("band %d: label is required", i))
		}
		if i > 0 && i < len(t)-1 && b.Min >= t[i-1].Min {
			errs = append(errs, fmt.Errorf("band %d: min %v must be below %v", i, b.Min, t[i-1].Min))
		}
	}
	return errors.Join(errs...)
}

// DashboardRisk is the four-band table of the interactive dashboard.
func DashboardRisk() RiskTable {
	return RiskTable{
		{Min: 80, Risk: RiskLow, Label: "Excellent"},
		{Min: 65, Risk: RiskLow, Label: "Good"},
		{Min: 50, Risk: RiskMedium, Label: "Average"},
		{Min: 0, Risk: RiskHigh, Label: "At Risk"},
	}
}

// SupportRisk is the three-band table of the decision-support report.
func SupportRisk() RiskTable {
	return RiskTable{
		{Min: 70, Risk: RiskLow, Label: "LOW RISK"},
		{Min: 50, Risk: RiskMedium, Label: "MEDIUM RISK"},
		{Min: 0, Risk: RiskHigh, Label: "HIGH RISK"},
	}
}

// GradeBand maps scores at or above Min to a letter grade.
type GradeBand struct {
	Min   float64 `yaml:"min" json:"min"`
	Grade string  `yaml:"grade" json:"grade"`
}

// GradeTable is ordered from the highest grade down; the last entry is the
// catch-all.
type GradeTable []GradeBand

// Grade returns the letter grade for a score.
func (t GradeTable) Grade(score float64) string {
	for _, g := range t[:len(t)-1] {
		if score >= g.Min {
			return g.Grade
		}
	}
	return t[len(t)-1].Grade
}

// Validate checks that grades are non-empty and strictly descending.
func (t GradeTable) Validate() error {
	if len(t) == 0 {
		return errors.New("grade table has no grades")
	}

	var errs []error
	for i, g := range t {
		if g.Grade == "" {
			errs = append(errs, fmt.Errorf("grade %d: name is required", i))
		}
		if i > 0 && i < len(t)-1 && g.Min >= t[i-1].Min {
			errs = append(errs, fmt.Errorf("grade %d: min %v must be below %v", i, g.Min, t[i-1].Min))
		}
	}
	return errors.Join(errs...)
}

// DefaultGrades returns the letter grade scale.
func DefaultGrades() GradeTable {
	return GradeTable{
		{Min: 85, Grade: "A+"},
		{Min: 75, Grade: "A"},
		{Min: 65, Grade: "B"},
		{Min: 55, Grade: "C"},
		{Min: 40, Grade: "D"},
		{Min: 0, Grade: "F"},
	}
}
