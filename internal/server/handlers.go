package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
	"github.com/indhiran08-coder/student-performance-ai/internal/monitor"
	"github.com/indhiran08-coder/student-performance-ai/internal/training"
)

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Model   string `json:"model,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// PredictRequest is the body of POST /v1/predict. All fields are required.
type PredictRequest struct {
	Attendance    *float64 `json:"attendance"`
	StudyHours    *float64 `json:"study_hours"`
	InternalMarks *float64 `json:"internal_marks"`
}

// PredictResponse carries the assessment. Warning is set when the
// prediction succeeded but could not be recorded.
type PredictResponse struct {
	advisor.Outcome
	Warning string `json:"warning,omitempty"`
}

type ModelResponse struct {
	artifact.Metadata
	Importances map[string]float64 `json:"importances"`
	Limits      dataset.Limits     `json:"limits"`
}

type StatusResponse struct {
	ModelLoaded bool                     `json:"model_loaded"`
	Artifacts   *artifact.Info           `json:"artifacts,omitempty"`
	History     HistoryStatus            `json:"history"`
	Host        *monitor.HostState       `json:"host,omitempty"`
	Retrain     *training.SchedulerStats `json:"retrain,omitempty"`
	Uptime      string                   `json:"uptime"`
}

type HistoryStatus struct {
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

var started = time.Now()

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	resp := InfoResponse{
		Name:    "studentperf",
		Version: s.version,
	}
	if engine, _ := s.current(""); engine != nil {
		resp.Model = engine.Metadata().ModelName
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = decision.RuleSetDashboard
	}
	if mode != decision.RuleSetDashboard && mode != decision.RuleSetSupport {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode), "mode")
		return
	}

	engine, adv := s.current(mode)
	if engine == nil {
		s.writeError(w, http.StatusServiceUnavailable, "model not trained", "")
		return
	}
	if adv == nil {
		s.writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("rule set %q unavailable", mode), "mode")
		return
	}

	var req PredictRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	obs, field := req.observation()
	if field != "" {
		s.writeError(w, http.StatusBadRequest, field+" is required", field)
		return
	}

	out, err := adv.Assess(obs)
	if out == nil {
		var invalid *dataset.InvalidInputError
		if errors.As(err, &invalid) {
			s.writeError(w, http.StatusBadRequest, invalid.Error(), invalid.Field)
			return
		}
		s.logger.Error("prediction failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "prediction failed", "")
		return
	}

	resp := PredictResponse{Outcome: *out}
	if err != nil {
		resp.Warning = "prediction not recorded in history"
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (r PredictRequest) observation() (dataset.Observation, string) {
	switch {
	case r.Attendance == nil:
		return dataset.Observation{}, "attendance"
	case r.StudyHours == nil:
		return dataset.Observation{}, "study_hours"
	case r.InternalMarks == nil:
		return dataset.Observation{}, "internal_marks"
	}
	return dataset.NewObservation(*r.Attendance, *r.StudyHours, *r.InternalMarks), ""
}

// handleHistory returns the history log and its trend. ?limit=N keeps the
// most recent N records; the trend always covers the whole log.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", "limit")
			return
		}
		limit = n
	}

	records, err := s.history.ReadAll()
	if err != nil {
		s.logger.Error("failed to read history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "history unavailable", "")
		return
	}

	trend, err := history.Summarize(records)
	if err != nil {
		s.logger.Error("failed to summarize history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "history unavailable", "")
		return
	}

	if limit >= 0 && limit < len(records) {
		records = records[len(records)-limit:]
	}

	s.writeJSON(w, http.StatusOK, advisor.Overview{Records: records, Trend: trend})
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	engine, _ := s.current("")
	if engine == nil {
		s.writeError(w, http.StatusServiceUnavailable, "model not trained", "")
		return
	}

	s.writeJSON(w, http.StatusOK, ModelResponse{
		Metadata:    engine.Metadata(),
		Importances: engine.Importances(),
		Limits:      engine.Limits(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	engine, _ := s.current("")

	resp := StatusResponse{
		ModelLoaded: engine != nil,
		Uptime:      time.Since(started).Round(time.Second).String(),
	}
	if s.store != nil {
		info := s.store.Info()
		resp.Artifacts = &info
	}
	if s.collector != nil {
		state := s.collector.Snapshot()
		resp.Host = &state
	}
	if s.scheduler != nil {
		stats := s.scheduler.Stats()
		resp.Retrain = &stats
	}

	if records, err := s.history.ReadAll(); err != nil {
		resp.History.Error = err.Error()
	} else {
		resp.History.Records = len(records)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// RetrainResponse acknowledges a queued retrain.
type RetrainResponse struct {
	Status string `json:"status"`
}

// handleRetrain queues a retrain in the background; progress is reported
// under /status.
func (s *Server) handleRetrain(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		s.writeError(w, http.StatusServiceUnavailable, "retraining is not enabled", "")
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		if _, err := s.scheduler.ForceRetrain(ctx); err != nil {
			s.logger.Error("requested retrain failed", "error", err)
		}
	}()

	s.writeJSON(w, http.StatusAccepted, RetrainResponse{Status: "retraining"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, field string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg, Field: field})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response",
			"error", err,
			"status", status,
		)
	}
}
