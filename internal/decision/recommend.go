package decision

import (
	"errors"
	"fmt"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
)

// Mode selects what a feature is compared against.
type Mode string

const (
	// ModeFixed compares against each rule's configured cutoff.
	ModeFixed Mode = "fixed"
	// ModeMean compares against the training mean of the feature, falling
	// back to the cutoff when no mean is known.
	ModeMean Mode = "mean"
)

// IsValid checks if the mode is valid.
func (m Mode) IsValid() bool {
	return m == ModeFixed || m == ModeMean
}

// Rule flags one feature as weak when it falls strictly below its cutoff.
type Rule struct {
	Feature  string  `yaml:"feature" json:"feature"`
	Cutoff   float64 `yaml:"cutoff" json:"cutoff"`
	WeakArea string  `yaml:"weak_area" json:"weak_area"`
	Message  string  `yaml:"message" json:"message"`
}

// RecommendationPolicy turns an observation into weak areas and advice.
type RecommendationPolicy struct {
	Mode        Mode   `yaml:"mode" json:"mode"`
	Rules       []Rule `yaml:"rules" json:"rules"`
	Affirmation string `yaml:"affirmation" json:"affirmation"`
}

// Recommend evaluates rules in feature order (attendance, study hours,
// internal marks) regardless of how they are listed. When nothing is weak
// the single affirmation is returned.
func (p RecommendationPolicy) Recommend(o dataset.Observation, means map[string]float64) (weak, advice []string) {
	for _, feature := range dataset.FeatureNames {
		r, ok := p.rule(feature)
		if !ok {
			continue
		}
		v, _ := o.Value(feature)

		cutoff := r.Cutoff
		if p.Mode == ModeMean {
			if m, ok := means[r.Feature]; ok {
				cutoff = m
			}
		}

		if v < cutoff {
			weak = append(weak, r.WeakArea)
			advice = append(advice, r.Message)
		}
	}

	if len(advice) == 0 {
		advice = []string{p.Affirmation}
	}
	return weak, advice
}

func (p RecommendationPolicy) rule(feature string) (Rule, bool) {
	for _, r := range p.Rules {
		if r.Feature == feature {
			return r, true
		}
	}
	return Rule{}, false
}

// Validate checks the policy. Every feature needs exactly one rule.
func (p RecommendationPolicy) Validate() error {
	var errs []error

	if !p.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("invalid recommendation mode %q", p.Mode))
	}
	if p.Affirmation == "" {
		errs = append(errs, errors.New("affirmation is required"))
	}

	seen := make(map[string]bool)
	for i, r := range p.Rules {
		if _, ok := (dataset.Observation{}).Value(r.Feature); !ok {
			errs = append(errs, fmt.Errorf("rule %d: unknown feature %q", i, r.Feature))
		}
		if seen[r.Feature] {
			errs = append(errs, fmt.Errorf("rule %d: duplicate feature %q", i, r.Feature))
		}
		seen[r.Feature] = true
		if r.Message == "" {
			errs = append(errs, fmt.Errorf("rule %d: message is required", i))
		}
	}

	for _, feature := range dataset.FeatureNames {
		if !seen[feature] {
			errs = append(errs, fmt.Errorf("missing rule for feature %q", feature))
		}
	}

	return errors.Join(errs...)
}
