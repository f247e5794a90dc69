// Package artifact persists the scoring artifact: the selected model and
// the scaler fitted alongside it.
package artifact

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/indhiran08-coder/student-performance-ai/internal/evaluation"
	"github.com/indhiran08-coder/student-performance-ai/internal/model"
	"github.com/indhiran08-coder/student-performance-ai/internal/scaler"
)

var (
	// ErrArtifactMissing is returned when the model or scaler is absent.
	ErrArtifactMissing = errors.New("scoring artifact not found")

	// ErrArtifactCorrupt is returned when a stored artifact cannot be decoded
	// or fails validation.
	ErrArtifactCorrupt = errors.New("scoring artifact is corrupt")
)

// Metadata describes the training run that produced an artifact.
type Metadata struct {
	RunID              uuid.UUID           `json:"run_id"`
	ModelName          string              `json:"model_name"`
	ModelType          model.ModelType     `json:"model_type"`
	TrainedAt          time.Time           `json:"trained_at"`
	TrainSize          int                 `json:"train_size"`
	TestSize           int                 `json:"test_size"`
	Results            []evaluation.Result `json:"results"`
	FeatureNames       []string            `json:"feature_names"`
	FeatureImportances []float64           `json:"feature_importances"`
}

// Artifact pairs a fitted model with the scaler fitted on the same
// training split. It is read-only once built.
type Artifact struct {
	Model  model.Fitted
	Scaler *scaler.Scaler
	Meta   Metadata
}

// Importances returns the model importances keyed by feature name.
func (a *Artifact) Importances() map[string]float64 {
	out := make(map[string]float64, len(a.Meta.FeatureNames))
	for j, name := range a.Meta.FeatureNames {
		if j < len(a.Meta.FeatureImportances) {
			out[name] = a.Meta.FeatureImportances[j]
		}
	}
	return out
}

// Validate checks that the model and scaler agree with each other.
func (a *Artifact) Validate() error {
	if a.Model == nil || a.Scaler == nil {
		return ErrArtifactMissing
	}
	if err := a.Scaler.Validate(); err != nil {
		return fmt.Errorf("scaler: %w", err)
	}
	if a.Model.Features() != a.Scaler.Width() {
		return fmt.Errorf("model expects %d features but scaler has %d", a.Model.Features(), a.Scaler.Width())
	}
	if len(a.Meta.FeatureNames) != a.Scaler.Width() {
		return fmt.Errorf("metadata names %d features but scaler has %d", len(a.Meta.FeatureNames), a.Scaler.Width())
	}
	for j, name := range a.Meta.FeatureNames {
		if a.Scaler.Features[j] != name {
			return fmt.Errorf("feature %d is %q in metadata but %q in scaler", j, name, a.Scaler.Features[j])
		}
	}
	for _, w := range a.Meta.FeatureImportances {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("invalid feature importance %v", w)
		}
	}
	return nil
}
