package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/monitor"
	"github.com/indhiran08-coder/student-performance-ai/internal/server"
	"github.com/indhiran08-coder/student-performance-ai/internal/training"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve predictions over HTTP",
	Long: `Start the JSON API in foreground mode.

SIGHUP reloads the model artifact from disk, so a model retrained with
'studentperf train' can be picked up without a restart ('studentperf
reload'). SIGINT and SIGTERM shut the server down gracefully.

With training.retrain_interval_sec set, the dataset is checked on that
interval and the model is retrained and swapped in whenever it changed.
POST /v1/retrain forces a run.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	serverAddr(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg)

	log.Info("studentperf starting",
		"version", Version,
		"config", cfgFile,
	)

	store := newStore(cfg, log)

	// The server starts without a model and answers 503 until one is
	// trained and reloaded.
	engine, err := loadEngine(cfg, store)
	if err != nil {
		if !errors.Is(err, artifact.ErrArtifactMissing) {
			return err
		}
		log.Warn("no trained model found", "dir", cfg.Artifacts.Dir)
	}

	collector := monitor.NewCollector(
		monitor.DefaultMonitors(cfg.Artifacts.Dir, filepath.Dir(cfg.History.Path)),
		5*time.Second,
		log,
	)

	var scheduler *training.Scheduler
	if interval := cfg.RetrainInterval(); interval > 0 {
		scheduler = training.NewScheduler(
			training.NewPipeline(cfg.TrainingOptions(), log),
			store,
			training.SchedulerConfig{
				DataPath: cfg.Data.Path,
				Limits:   cfg.Data.Limits,
				Interval: interval,
			},
			log,
		)
	}

	srv := server.New(cfg, server.Deps{
		Engine:    engine,
		History:   newHistory(cfg),
		Store:     store,
		Collector: collector,
		Scheduler: scheduler,
	}, log, Version)

	if scheduler != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retrain scheduler: %w", err)
		}
		defer scheduler.Stop()
		log.Info("retrain scheduler started", "interval", cfg.RetrainInterval(), "data", cfg.Data.Path)
	}

	// Write PID file if configured
	if cfg.Server.PIDFile != "" {
		if err := writePIDFile(cfg.Server.PIDFile); err != nil {
			log.Warn("failed to write PID file", "error", err)
		} else {
			defer os.Remove(cfg.Server.PIDFile)
		}
	}

	sighupCh := make(chan os.Signal, 1)
	sigCh := make(chan os.Signal, 1)
	shutdownDone := make(chan struct{})

	signal.Notify(sighupCh, syscall.SIGHUP)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for {
			select {
			case <-sighupCh:
				log.Info("SIGHUP received, reloading model")
				if err := srv.ReloadModel(); err != nil {
					log.Error("model reload failed, keeping current model", "error", err)
				}
			case <-shutdownDone:
				return
			}
		}
	}()

	go func() {
		<-sigCh

		log.Info("shutdown signal received")

		signal.Stop(sighupCh)
		signal.Stop(sigCh)
		close(shutdownDone)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
	}()

	log.Info("studentperf ready", "addr", srv.Addr())

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("studentperf stopped")
	return nil
}

func writePIDFile(path string) error {
	return os.WriteFile(path, []byte(fmt.Sprintf("%d", os.Getpid())), 0644)
}
