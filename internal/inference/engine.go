// Package inference scores observations with a loaded artifact.
package inference

import (
	"fmt"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
)

// Engine predicts final marks. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	artifact *artifact.Artifact
	limits   dataset.Limits
}

// New creates an engine over a complete artifact.
func New(a *artifact.Artifact, limits dataset.Limits) (*Engine, error) {
	if a == nil || a.Model == nil || a.Scaler == nil {
		return nil, artifact.ErrArtifactMissing
	}
	if a.Scaler.Width() != dataset.NumFeatures {
		return nil, fmt.Errorf("%w: artifact has %d features, expected %d",
			artifact.ErrArtifactCorrupt, a.Scaler.Width(), dataset.NumFeatures)
	}
	return &Engine{artifact: a, limits: limits}, nil
}

// Predict validates, scales and scores one observation.
func (e *Engine) Predict(o dataset.Observation) (float64, error) {
	if err := o.Validate(e.limits); err != nil {
		return 0, err
	}

	scaled, err := e.artifact.Scaler.Transform(o.Vector())
	if err != nil {
		return 0, err
	}
	return e.artifact.Model.Predict(scaled), nil
}

// Means returns the training-split feature means by name.
func (e *Engine) Means() map[string]float64 {
	sc := e.artifact.Scaler
	out := make(map[string]float64, sc.Width())
	for j, name := range sc.Features {
		out[name] = sc.Mean[j]
	}
	return out
}

// Importances returns the model-derived importance of each feature.
func (e *Engine) Importances() map[string]float64 {
	return e.artifact.Importances()
}

// Metadata returns the training metadata of the artifact.
func (e *Engine) Metadata() artifact.Metadata {
	return e.artifact.Meta
}

// Limits returns the accepted input domain.
func (e *Engine) Limits() dataset.Limits {
	return e.limits
}
