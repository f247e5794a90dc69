package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/evaluation"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Describe the persisted model",
	Long:  `Show the stored artifact files, the metadata of the training run and the feature importances.`,
	RunE:  runModel,
}

func init() {
	rootCmd.AddCommand(modelCmd)
}

type modelOutput struct {
	Files       artifact.Info      `json:"files"`
	Metadata    artifact.Metadata  `json:"metadata"`
	Importances map[string]float64 `json:"importances"`
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := newStore(cfg, newLogger(cfg))

	a, err := store.Load()
	if err != nil {
		return fmt.Errorf("%w (run 'studentperf train' first)", err)
	}
	info := store.Info()

	out := cmd.OutOrStdout()
	if jsonOut {
		return writeJSON(out, modelOutput{Files: info, Metadata: a.Meta, Importances: a.Importances()})
	}

	meta := a.Meta
	fmt.Fprintf(out, "Model:    %s (%s)\n", meta.ModelName, meta.ModelType)
	fmt.Fprintf(out, "Run:      %s\n", meta.RunID)
	fmt.Fprintf(out, "Trained:  %s (%s)\n", meta.TrainedAt.Format("2006-01-02 15:04:05"), humanize.Time(meta.TrainedAt))
	fmt.Fprintf(out, "Rows:     %s train / %s test\n", humanize.Comma(int64(meta.TrainSize)), humanize.Comma(int64(meta.TestSize)))
	fmt.Fprintln(out, "Files:")
	printFileInfo(out, "model", info.Model)
	printFileInfo(out, "scaler", info.Scaler)

	if len(meta.Results) > 0 {
		sel, err := evaluation.Select(meta.Results, evaluation.SelectOptions{MaxDivergence: cfg.Training.MaxDivergence})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, evaluation.RenderTable(sel))
	}

	fmt.Fprintln(out, "\nFeature importance:")
	printImportances(out, meta.FeatureNames, meta.FeatureImportances)
	return nil
}

// printImportances prints one bar per feature, scaled to 40 columns.
func printImportances(w io.Writer, names []string, weights []float64) {
	const width = 40
	for i, name := range names {
		v := 0.0
		if i < len(weights) {
			v = weights[i]
		}
		fmt.Fprintf(w, "  %-14s %-*s %5.1f%%\n", name, width, strings.Repeat("█", int(v*width+0.5)), v*100)
	}
}
