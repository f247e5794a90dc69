package model

// ModelType represents a candidate regression algorithm.
type ModelType string

const (
	ModelTypeLinear           ModelType = "linear"
	ModelTypeRandomForest     ModelType = "random_forest"
	ModelTypeGradientBoosting ModelType = "gradient_boosting"
)

// AllTypes lists every candidate in declaration order.
var AllTypes = []ModelType{ModelTypeLinear, ModelTypeRandomForest, ModelTypeGradientBoosting}

// IsValid checks if the model type is valid.
func (m ModelType) IsValid() bool {
	switch m {
	case ModelTypeLinear, ModelTypeRandomForest, ModelTypeGradientBoosting:
		return true
	}
	return false
}

// String returns string representation.
func (m ModelType) String() string {
	return string(m)
}

// DisplayName returns the human-readable algorithm name.
func (m ModelType) DisplayName() string {
	switch m {
	case ModelTypeLinear:
		return "Linear Regression"
	case ModelTypeRandomForest:
		return "Random Forest"
	case ModelTypeGradientBoosting:
		return "Gradient Boosting"
	default:
		return string(m)
	}
}

// Regressor trains a model on scaled feature vectors.
// Fit never mutates its inputs and always returns a fresh Fitted value,
// so one Regressor can be fitted repeatedly (e.g. once per CV fold).
type Regressor interface {
	// Name returns the display name of the algorithm.
	Name() string

	// Type returns the model type.
	Type() ModelType

	// Fit trains on rows x with targets y.
	Fit(x [][]float64, y []float64) (Fitted, error)
}

// Fitted is a trained model. Implementations are immutable after Fit and
// Predict is deterministic.
type Fitted interface {
	Name() string
	Type() ModelType

	// Predict returns the predicted score for one scaled feature vector.
	Predict(x []float64) float64

	// FeatureImportances returns one non-negative weight per feature,
	// summing to 1 unless every weight is zero.
	FeatureImportances() []float64

	// Features returns the expected input width.
	Features() int
}

// PredictAll predicts every row.
func PredictAll(m Fitted, x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.Predict(row)
	}
	return out
}

func normalize(weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	out := make([]float64, len(weights))
	if sum <= 0 {
		return out
	}
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}
