package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict final marks for one student",
	Long: `Predict the final marks of a student, classify the academic risk and
print recommendations. Values not given as flags are read from stdin.

Examples:
  studentperf predict
  studentperf predict --attendance 75 --study-hours 2 --internal-marks 20
  studentperf predict --mode dashboard --json < answers.txt`,
	RunE: runPredict,
}

var (
	predictAttendance float64
	predictStudyHours float64
	predictInternal   float64
	predictMode       string
)

func init() {
	predictCmd.Flags().Float64Var(&predictAttendance, "attendance", 0, "attendance percentage (0-100)")
	predictCmd.Flags().Float64Var(&predictStudyHours, "study-hours", 0, "study hours per day")
	predictCmd.Flags().Float64Var(&predictInternal, "internal-marks", 0, "internal assessment marks")
	predictCmd.Flags().StringVar(&predictMode, "mode", decision.RuleSetSupport, "rule set: support or dashboard")
	rootCmd.AddCommand(predictCmd)
}

// prompt describes one value read from stdin when its flag is absent.
type prompt struct {
	flag  string
	label string
	dest  *float64
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, err := cfg.RuleSet(predictMode)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	engine, err := loadEngine(cfg, newStore(cfg, log))
	if err != nil {
		return err
	}

	obs, err := readObservation(cmd, []prompt{
		{"attendance", "Enter Attendance (%): ", &predictAttendance},
		{"study-hours", "Enter Study Hours per day: ", &predictStudyHours},
		{"internal-marks", "Enter Internal Marks: ", &predictInternal},
	})
	if err != nil {
		return err
	}

	out, err := advisor.New(engine, rules, newHistory(cfg), log).Assess(obs)
	if out == nil {
		return err
	}
	var we *history.WriteError
	if errors.As(err, &we) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	printOutcome(cmd.OutOrStdout(), out)
	return nil
}

// readObservation prompts on stdout for every value whose flag was not
// set and reads the answers line by line from stdin.
func readObservation(cmd *cobra.Command, prompts []prompt) (dataset.Observation, error) {
	in := bufio.NewScanner(cmd.InOrStdin())
	for _, p := range prompts {
		if cmd.Flags().Changed(p.flag) {
			continue
		}
		fmt.Fprint(cmd.OutOrStdout(), p.label)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return dataset.Observation{}, err
			}
			return dataset.Observation{}, fmt.Errorf("%s: %w", p.flag, io.ErrUnexpectedEOF)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(in.Text()), 64)
		if err != nil {
			return dataset.Observation{}, fmt.Errorf("%s: not a number: %q", p.flag, in.Text())
		}
		*p.dest = v
	}
	return dataset.NewObservation(predictAttendance, predictStudyHours, predictInternal), nil
}

func printOutcome(w io.Writer, out *advisor.Outcome) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STUDENT PERFORMANCE DECISION SUPPORT")
	fmt.Fprintln(w, "------------------------------------")
	fmt.Fprintf(w, "Predicted Final Marks : %s\n", strconv.FormatFloat(out.PredictedMarks, 'f', 2, 64))
	fmt.Fprintf(w, "Grade                 : %s\n", out.Grade)
	fmt.Fprintf(w, "Risk Level            : %s\n", out.Category)

	if len(out.WeakAreas) > 0 {
		fmt.Fprintf(w, "Weak Areas            : %s\n", strings.Join(out.WeakAreas, ", "))
	}

	fmt.Fprintln(w, "\nRecommendations:")
	for _, rec := range out.Recommendations {
		fmt.Fprintln(w, "-", rec)
	}
}
