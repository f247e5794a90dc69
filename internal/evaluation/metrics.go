package evaluation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MAE returns the mean absolute error.
func MAE(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	return floats.Distance(predicted, actual, 1) / float64(len(actual))
}

// RMSE returns the root mean squared error.
func RMSE(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	return floats.Distance(predicted, actual, 2) / math.Sqrt(float64(len(actual)))
}

// R2 returns the coefficient of determination. Constant targets score 1
// when every prediction is exact and 0 otherwise.
func R2(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	if floats.Max(actual) == floats.Min(actual) {
		if floats.Equal(predicted, actual) {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
