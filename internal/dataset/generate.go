package dataset

import (
	"math"
	"math/rand/v2"
)

// GeneratorConfig controls synthetic dataset generation.
type GeneratorConfig struct {
	Rows int
	Seed uint64
	// Noise is the standard deviation of the gaussian noise added to the target.
	Noise float64
}

// Target weights of the synthetic generator.
const (
	attendanceWeight = 0.35
	studyHoursWeight = 4.0
	internalWeight   = 1.2
)

// SyntheticMarks is the noise-free target used by Generate.
func SyntheticMarks(o Observation) float64 {
	return attendanceWeight*o.Attendance + studyHoursWeight*o.StudyHours + internalWeight*o.InternalMarks
}

// Generate produces a reproducible synthetic training set. Inputs are whole
// numbers in slider ranges (attendance 40-100, study hours 0-6, internal 0-30).
func Generate(cfg GeneratorConfig) []LabeledObservation {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed))

	rows := make([]LabeledObservation, cfg.Rows)
	for i := range rows {
		obs := NewObservation(
			float64(40+rng.IntN(61)),
			float64(rng.IntN(7)),
			float64(rng.IntN(31)),
		)

		final := SyntheticMarks(obs)
		if cfg.Noise > 0 {
			final += rng.NormFloat64() * cfg.Noise
		}
		final = math.Min(100, math.Max(0, final))

		rows[i] = LabeledObservation{
			Attendance:    obs.Attendance,
			StudyHours:    obs.StudyHours,
			InternalMarks: obs.InternalMarks,
			FinalMarks:    final,
		}
	}

	return rows
}
