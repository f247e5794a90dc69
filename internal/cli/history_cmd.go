package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past predictions and their trend",
	Long: `Print the prediction history log and a summary of the predicted marks.

Examples:
  studentperf history
  studentperf history --limit 10
  studentperf history --json`,
	RunE: runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of most recent records to show (0 shows all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := newHistory(cfg).ReadAll()
	if err != nil {
		return err
	}
	trend, err := history.Summarize(records)
	if err != nil {
		return err
	}
	if historyLimit > 0 && historyLimit < len(records) {
		records = records[len(records)-historyLimit:]
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return writeJSON(out, advisor.Overview{Records: records, Trend: trend})
	}

	if trend.Count == 0 {
		fmt.Fprintln(out, "No predictions recorded yet.")
		return nil
	}

	fmt.Fprintln(out, renderHistory(records))
	printTrend(out, trend)
	return nil
}

func renderHistory(records []history.Record) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			formatNumber(r.Attendance),
			formatNumber(r.StudyHours),
			formatNumber(r.InternalMarks),
			strconv.FormatFloat(r.PredictedMarks, 'f', 2, 64),
			r.Risk,
			r.Grade,
		}
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true).Foreground(lipgloss.Color("86"))

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Attendance", "Study Hours", "Internal", "Predicted", "Risk", "Grade").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func printTrend(w io.Writer, t history.Trend) {
	fmt.Fprintf(w, "\nPredictions: %d\n", t.Count)
	fmt.Fprintf(w, "Mean:        %.2f (median %.2f, std %.2f)\n", t.Mean, t.Median, t.StdDev)
	fmt.Fprintf(w, "Range:       %.2f - %.2f\n", t.Min, t.Max)
	fmt.Fprintf(w, "Latest:      %.2f (%+.2f since first)\n", t.Latest, t.Change)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
