package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/config"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
	"github.com/indhiran08-coder/student-performance-ai/internal/inference"
	"github.com/indhiran08-coder/student-performance-ai/internal/monitor"
	"github.com/indhiran08-coder/student-performance-ai/internal/server/middleware"
	"github.com/indhiran08-coder/student-performance-ai/internal/training"
)

// Deps are the components the API serves from. Engine may be nil until a
// model has been trained.
type Deps struct {
	Engine    *inference.Engine
	History   history.Log
	Store     *artifact.Store
	Collector *monitor.Collector
	Scheduler *training.Scheduler
}

type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *slog.Logger
	version    string

	store     *artifact.Store
	collector *monitor.Collector
	scheduler *training.Scheduler
	history   history.Log

	mu       sync.RWMutex
	engine   *inference.Engine
	advisors map[string]*advisor.Advisor
}

func New(cfg *config.Config, deps Deps, logger *slog.Logger, version string) *Server {
	if deps.History == nil {
		deps.History = history.Discard{}
	}

	s := &Server{
		config:    cfg,
		logger:    logger,
		version:   version,
		store:     deps.Store,
		collector: deps.Collector,
		scheduler: deps.Scheduler,
		history:   deps.History,
	}
	s.setEngine(deps.Engine)

	if s.scheduler != nil {
		s.scheduler.OnTrained(func(r *training.Report) {
			if err := s.useArtifact(r.Artifact); err != nil {
				s.logger.Error("retrained model rejected", "error", err)
			}
		})
	}

	mux := s.setupRoutes()

	handler := middleware.Chain(
		mux,
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.SecurityHeaders(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Enabled:           cfg.Server.RateLimit.Enabled,
			RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
			Burst:             cfg.Server.RateLimit.Burst,
		}),
		middleware.MaxBody(cfg.Server.MaxBodyBytes),
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setEngine(engine *inference.Engine) {
	advisors := make(map[string]*advisor.Advisor, 2)
	if engine != nil {
		for _, name := range []string{decision.RuleSetDashboard, decision.RuleSetSupport} {
			rules, err := s.config.RuleSet(name)
			if err != nil {
				s.logger.Error("rule set unavailable", "mode", name, "error", err)
				continue
			}
			advisors[name] = advisor.New(engine, rules, s.history, s.logger)
		}
	}

	s.mu.Lock()
	s.engine = engine
	s.advisors = advisors
	s.mu.Unlock()
}

// ReloadModel swaps in a freshly loaded artifact. In-flight requests finish
// on the previous engine.
func (s *Server) ReloadModel() error {
	a, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}
	return s.useArtifact(a)
}

func (s *Server) useArtifact(a *artifact.Artifact) error {
	engine, err := inference.New(a, s.config.Data.Limits)
	if err != nil {
		return err
	}

	s.setEngine(engine)
	s.logger.Info("model loaded",
		"model", a.Meta.ModelName,
		"run_id", a.Meta.RunID.String(),
	)
	return nil
}

func (s *Server) current(mode string) (*inference.Engine, *advisor.Advisor) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, s.advisors[mode]
}

func (s *Server) Start() error {
	s.logger.Info("server starting",
		"addr", s.httpServer.Addr,
	)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
