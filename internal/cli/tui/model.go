package tui

import (
	"math"
	"time"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
)

// Config holds TUI configuration
type Config struct {
	Advisor       *advisor.Advisor
	ShowAnalytics bool
}

// slider is one bounded numeric input.
type slider struct {
	label string
	min   float64
	max   float64
	step  float64
	value float64
}

func (s *slider) move(steps float64) {
	s.value = math.Max(s.min, math.Min(s.max, s.value+steps*s.step))
}

func (s slider) fraction() float64 {
	if s.max == s.min {
		return 0
	}
	return (s.value - s.min) / (s.max - s.min)
}

// Model represents the TUI state
type Model struct {
	config Config

	sliders []slider
	focus   int

	// Results
	outcome  *advisor.Outcome
	overview *advisor.Overview
	warning  string
	stale    bool

	// UI state
	width         int
	height        int
	showAnalytics bool
	err           error
	lastPredicted time.Time

	// History table scroll position, counted from the newest record
	historyOffset int
}

// NewModel creates a new TUI model with the sliders at their defaults.
func NewModel(cfg Config) Model {
	limits := dataset.DefaultLimits()
	if cfg.Advisor != nil {
		limits = cfg.Advisor.Engine().Limits()
	}

	return Model{
		config:        cfg,
		showAnalytics: cfg.ShowAnalytics,
		sliders: []slider{
			{label: "Attendance (%)", max: limits.MaxAttendance, step: 1, value: math.Min(75, limits.MaxAttendance)},
			{label: "Study Hours / Day", max: math.Min(6, limits.MaxStudyHours), step: 1, value: 2},
			{label: "Internal Marks", max: limits.MaxInternalMarks, step: 1, value: math.Min(20, limits.MaxInternalMarks)},
		},
	}
}

func (m Model) observation() dataset.Observation {
	return dataset.NewObservation(m.sliders[0].value, m.sliders[1].value, m.sliders[2].value)
}
