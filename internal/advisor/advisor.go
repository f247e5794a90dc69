// Package advisor ties prediction, decision rules and the history log
// together for one observation.
package advisor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/evaluation"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
	"github.com/indhiran08-coder/student-performance-ai/internal/inference"
)

// Outcome is the result of assessing one observation.
type Outcome struct {
	Observation dataset.Observation `json:"observation"`
	decision.Assessment
}

// Advisor assesses observations and records them.
type Advisor struct {
	engine  *inference.Engine
	rules   decision.RuleSet
	history history.Log
	logger  *slog.Logger
}

// New creates an advisor. A nil log keeps no history.
func New(engine *inference.Engine, rules decision.RuleSet, log history.Log, logger *slog.Logger) *Advisor {
	if log == nil {
		log = history.Discard{}
	}
	return &Advisor{
		engine:  engine,
		rules:   rules,
		history: log,
		logger:  logger,
	}
}

// Rules returns the rule set in use.
func (a *Advisor) Rules() decision.RuleSet {
	return a.rules
}

// Engine returns the inference engine.
func (a *Advisor) Engine() *inference.Engine {
	return a.engine
}

// Assess predicts, applies the rule set and appends a history record.
// PredictedMarks in the outcome is rounded to two decimals.
// When only the append fails the outcome is returned together with a
// *history.WriteError.
func (a *Advisor) Assess(o dataset.Observation) (*Outcome, error) {
	score, err := a.engine.Predict(o)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Observation: o,
		Assessment:  a.rules.Evaluate(score, o, a.engine.Means()),
	}

	// Bands are applied to the raw score; callers only see two decimals.
	out.PredictedMarks = evaluation.Round(score, 2)

	rec := history.Record{
		Attendance:     o.Attendance,
		StudyHours:     o.StudyHours,
		InternalMarks:  o.InternalMarks,
		PredictedMarks: out.PredictedMarks,
		Risk:           out.Risk.String(),
		Grade:          out.Grade,
	}
	if err := a.history.Append(rec); err != nil {
		var we *history.WriteError
		if !errors.As(err, &we) {
			we = &history.WriteError{Err: err}
		}
		a.logger.Error("history append failed", "error", err)
		return out, we
	}

	a.logger.Debug("observation assessed",
		"rule_set", a.rules.Name,
		"predicted", rec.PredictedMarks,
		"risk", rec.Risk,
		"grade", rec.Grade,
	)
	return out, nil
}

// Overview is the trend view of the history log.
type Overview struct {
	Records []history.Record `json:"records"`
	Trend   history.Trend    `json:"trend"`
}

// History reads the log and summarizes it.
func (a *Advisor) History() (*Overview, error) {
	records, err := a.history.ReadAll()
	if err != nil {
		return nil, err
	}

	trend, err := history.Summarize(records)
	if err != nil {
		return nil, fmt.Errorf("summarize history: %w", err)
	}
	return &Overview{Records: records, Trend: trend}, nil
}
