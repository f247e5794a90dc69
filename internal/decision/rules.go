// Package decision maps predicted scores to risk tiers, grades and
// recommendations.
package decision

import (
	"errors"
	"fmt"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
)

// Rule set names.
const (
	RuleSetDashboard = "dashboard"
	RuleSetSupport   = "support"
)

// Assessment is the full decision for one prediction.
type Assessment struct {
	RuleSet         string   `json:"rule_set"`
	PredictedMarks  float64  `json:"predicted_marks"`
	Risk            Risk     `json:"risk"`
	Category        string   `json:"category"`
	Grade           string   `json:"grade"`
	WeakAreas       []string `json:"weak_areas"`
	Recommendations []string `json:"recommendations"`
}

// RuleSet bundles the tables applied to a prediction.
type RuleSet struct {
	Name            string               `yaml:"name" json:"name"`
	Risk            RiskTable            `yaml:"risk" json:"risk"`
	Grades          GradeTable           `yaml:"grades" json:"grades"`
	Recommendations RecommendationPolicy `yaml:"recommendations" json:"recommendations"`
}

// Evaluate classifies a score and derives advice from the observation.
// means holds training means by feature name and may be nil.
func (r RuleSet) Evaluate(score float64, o dataset.Observation, means map[string]float64) Assessment {
	band := r.Risk.Classify(score)
	weak, advice := r.Recommendations.Recommend(o, means)

	if weak == nil {
		weak = []string{}
	}

	return Assessment{
		RuleSet:         r.Name,
		PredictedMarks:  score,
		Risk:            band.Risk,
		Category:        band.Label,
		Grade:           r.Grades.Grade(score),
		WeakAreas:       weak,
		Recommendations: advice,
	}
}

// Validate checks every table of the rule set.
func (r RuleSet) Validate() error {
	var errs []error

	if r.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := r.Risk.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("risk: %w", err))
	}
	if err := r.Grades.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("grades: %w", err))
	}
	if err := r.Recommendations.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("recommendations: %w", err))
	}

	return errors.Join(errs...)
}

// Dashboard returns the rule set of the interactive dashboard: four risk
// bands and advice relative to the training means.
func Dashboard() RuleSet {
	return RuleSet{
		Name:   RuleSetDashboard,
		Risk:   DashboardRisk(),
		Grades: DefaultGrades(),
		Recommendations: RecommendationPolicy{
			Mode: ModeMean,
			Rules: []Rule{
				{
					Feature:  dataset.FeatureAttendance,
					Cutoff:   75,
					WeakArea: "Attendance",
					Message:  "Increase attendance by attending all classes regularly.",
				},
				{
					Feature:  dataset.FeatureStudyHours,
					Cutoff:   2,
					WeakArea: "Study Hours",
					Message:  "Increase daily study time by at least 1 hour.",
				},
				{
					Feature:  dataset.FeatureInternalMarks,
					Cutoff:   20,
					WeakArea: "Internal Marks",
					Message:  "Improve internal assessment performance through practice tests.",
				},
			},
			Affirmation: "Keep up the good work! Maintain current performance.",
		},
	}
}

// Support returns the rule set of the decision-support report: three risk
// bands and fixed cutoffs.
func Support() RuleSet {
	return RuleSet{
		Name:   RuleSetSupport,
		Risk:   SupportRisk(),
		Grades: DefaultGrades(),
		Recommendations: RecommendationPolicy{
			Mode: ModeFixed,
			Rules: []Rule{
				{
					Feature:  dataset.FeatureAttendance,
					Cutoff:   75,
					WeakArea: "Attendance",
					Message:  "Increase attendance to improve performance.",
				},
				{
					Feature:  dataset.FeatureStudyHours,
					Cutoff:   2,
					WeakArea: "Study Hours",
					Message:  "Increase daily study hours.",
				},
				{
					Feature:  dataset.FeatureInternalMarks,
					Cutoff:   20,
					WeakArea: "Internal Marks",
					Message:  "Focus on internal assessments.",
				},
			},
			Affirmation: "Excellent performance. Keep it up!",
		},
	}
}
