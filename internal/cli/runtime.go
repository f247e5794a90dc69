package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/config"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
	"github.com/indhiran08-coder/student-performance-ai/internal/inference"
	"github.com/indhiran08-coder/student-performance-ai/internal/logger"
)

// loadConfig reads the config file named by --config, falling back to
// defaults when the default file does not exist.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(config.DefaultPath)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.New(level, cfg.Logging.Format)
}

// serverAddr applies --host and --port over the config.
func serverAddr(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
}

func newStore(cfg *config.Config, log *slog.Logger) *artifact.Store {
	return artifact.NewStore(cfg.Artifacts.Dir, cfg.Artifacts.ModelFile, cfg.Artifacts.ScalerFile, log)
}

func newHistory(cfg *config.Config) history.Log {
	if !cfg.History.Enabled {
		return history.Discard{}
	}
	return history.NewCSVLog(cfg.History.Path)
}

// loadEngine loads the persisted artifact. A missing artifact gets a hint
// to run the train command first.
func loadEngine(cfg *config.Config, store *artifact.Store) (*inference.Engine, error) {
	a, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w (run 'studentperf train' first)", err)
	}
	return inference.New(a, cfg.Data.Limits)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
