package cli

import (
	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/cli/tui"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/logger"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive prediction dashboard",
	Long: `Launch a terminal dashboard with sliders for attendance, study hours and
internal marks. Predictions use the dashboard rule set and are recorded in
the history log.

Examples:
  studentperf dashboard
  studentperf dashboard --no-analytics`,
	RunE: runDashboard,
}

var noAnalytics bool

func init() {
	dashboardCmd.Flags().BoolVar(&noAnalytics, "no-analytics", false, "start with analytics hidden")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.RuleSet(decision.RuleSetDashboard)
	if err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen.
	log := logger.Discard()

	engine, err := loadEngine(cfg, newStore(cfg, log))
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		Advisor:       advisor.New(engine, rules, newHistory(cfg), log),
		ShowAnalytics: !noAnalytics,
	})
}
