package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/evaluation"
	"github.com/indhiran08-coder/student-performance-ai/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Compare candidate models and persist the best one",
	Long: `Train every candidate model on the configured dataset, score them on a
held-out split and with k-fold cross-validation, and save the winning model
together with its scaler.

Examples:
  studentperf train
  studentperf train --data data/students.csv --strict
  studentperf train --no-save --json`,
	RunE: runTrain,
}

var (
	trainData   string
	trainStrict bool
	trainNoSave bool
)

func init() {
	trainCmd.Flags().StringVar(&trainData, "data", "", "training CSV (overrides config)")
	trainCmd.Flags().BoolVar(&trainStrict, "strict", false, "never select a model whose CV score diverges from its test score")
	trainCmd.Flags().BoolVar(&trainNoSave, "no-save", false, "evaluate only, do not persist the artifact")
	rootCmd.AddCommand(trainCmd)
}

type trainOutput struct {
	RunID     string                `json:"run_id"`
	Results   []evaluation.Result   `json:"results"`
	Selection *evaluation.Selection `json:"selection"`
	Saved     bool                  `json:"saved"`
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if trainData != "" {
		cfg.Data.Path = trainData
	}
	if trainStrict {
		cfg.Training.Strict = true
	}
	log := newLogger(cfg)

	rows, err := dataset.Load(cfg.Data.Path, cfg.Data.Limits)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := training.NewPipeline(cfg.TrainingOptions(), log).Run(ctx, rows)
	if err != nil {
		return err
	}

	if !trainNoSave {
		if err := newStore(cfg, log).Save(report.Artifact); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return writeJSON(out, trainOutput{
			RunID:     report.RunID.String(),
			Results:   report.Results,
			Selection: report.Selection,
			Saved:     !trainNoSave,
		})
	}

	fmt.Fprintf(out, "Trained on %d rows, tested on %d (%s)\n\n", report.TrainSize, report.TestSize, report.Duration.Round(time.Millisecond))
	fmt.Fprintln(out, evaluation.RenderTable(report.Selection))
	if len(report.Selection.Flags) > 0 {
		fmt.Fprintf(out, "* cross-validation differs from the test score by more than %.2f\n", cfg.Training.MaxDivergence)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, evaluation.Summary(report.Selection))

	fmt.Fprintln(out, "\nFeature importance:")
	printImportances(out, report.Artifact.Meta.FeatureNames, report.Artifact.Meta.FeatureImportances)

	if !trainNoSave {
		fmt.Fprintf(out, "\nSaved %s and %s\n", cfg.Artifacts.ModelFile, cfg.Artifacts.ScalerFile)
	}
	return nil
}
