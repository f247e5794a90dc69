package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/server"
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Ask the running server to retrain its model",
	Long: `Queue a retrain on the running server. The server must have
training.retrain_interval_sec set; progress shows up in 'studentperf status'.`,
	RunE: runRetrain,
}

func init() {
	rootCmd.AddCommand(retrainCmd)
}

func runRetrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	serverAddr(cmd, cfg)

	var resp server.RetrainResponse
	if err := NewClient(cfg).PostJSON("/v1/retrain", http.StatusAccepted, &resp); err != nil {
		return fmt.Errorf("failed to request retrain: %w", err)
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Retrain queued; check 'studentperf status' for progress")
	return nil
}
