package history

import (
	"github.com/montanaflynn/stats"
)

// Trend summarizes predicted marks across the log.
type Trend struct {
	Count  int       `json:"count"`
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	StdDev float64   `json:"std_dev"`
	Latest float64   `json:"latest"`
	Change float64   `json:"change"` // latest minus first
	Series []float64 `json:"series"`
}

// Summarize computes the trend of predicted marks in record order.
func Summarize(records []Record) (Trend, error) {
	series := make(stats.Float64Data, len(records))
	for i, r := range records {
		series[i] = r.PredictedMarks
	}

	trend := Trend{Count: len(series), Series: []float64(series)}
	if len(series) == 0 {
		return trend, nil
	}

	var err error
	if trend.Mean, err = series.Mean(); err != nil {
		return trend, err
	}
	if trend.Median, err = series.Median(); err != nil {
		return trend, err
	}
	if trend.Min, err = series.Min(); err != nil {
		return trend, err
	}
	if trend.Max, err = series.Max(); err != nil {
		return trend, err
	}
	if trend.StdDev, err = series.StandardDeviationPopulation(); err != nil {
		return trend, err
	}

	trend.Latest = series[len(series)-1]
	trend.Change = trend.Latest - series[0]
	return trend, nil
}
