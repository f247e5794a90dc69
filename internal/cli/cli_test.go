package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/config"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/logger"
	"github.com/indhiran08-coder/student-performance-ai/internal/server"
)

// resetFlags restores every flag to its default so that commands can be
// executed more than once in a test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// testWorkspace writes a config that keeps every file under a temp dir.
func testWorkspace(t *testing.T) (dir, cfgPath string) {
	t.Helper()

	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "studentperf.yaml")
	yaml := fmt.Sprintf(`data:
  path: %[1]s/data/students.csv
training:
  model_params:
    n_estimators: 10
    boosting_stages: 10
artifacts:
  dir: %[1]s/models
history:
  path: %[1]s/history/student_history.csv
logging:
  level: error
`, dir)
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir, cfgPath
}

// trainedWorkspace generates a dataset and trains on it.
func trainedWorkspace(t *testing.T) (dir, cfgPath string) {
	t.Helper()

	dir, cfgPath = testWorkspace(t)
	if _, err := execute(t, "", "generate", "-c", cfgPath); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := execute(t, "", "train", "-c", cfgPath); err != nil {
		t.Fatalf("train error: %v", err)
	}
	return dir, cfgPath
}

func TestGenerate(t *testing.T) {
	dir, cfgPath := testWorkspace(t)

	out, err := execute(t, "", "generate", "-c", cfgPath, "--rows", "50", "--seed", "3")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !strings.Contains(out, "Wrote 50 records") {
		t.Errorf("unexpected output %q", out)
	}

	rows, err := dataset.Load(filepath.Join(dir, "data", "students.csv"), dataset.DefaultLimits())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(rows) != 50 {
		t.Errorf("expected 50 rows, got %d", len(rows))
	}
}

func TestGenerate_InvalidFlags(t *testing.T) {
	_, cfgPath := testWorkspace(t)

	if _, err := execute(t, "", "generate", "-c", cfgPath, "--rows", "0"); err == nil {
		t.Error("expected error for zero rows")
	}
	if _, err := execute(t, "", "generate", "-c", cfgPath, "--noise", "-1"); err == nil {
		t.Error("expected error for negative noise")
	}
}

func TestTrain(t *testing.T) {
	dir, cfgPath := testWorkspace(t)
	if _, err := execute(t, "", "generate", "-c", cfgPath); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	out, err := execute(t, "", "train", "-c", cfgPath)
	if err != nil {
		t.Fatalf("train error: %v", err)
	}

	for _, want := range []string{"Linear Regression", "Random Forest", "Gradient Boosting", "Best Model: Linear Regression", "Feature importance"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	for _, name := range []string{artifact.DefaultModelFile, artifact.DefaultScalerFile} {
		if _, err := os.Stat(filepath.Join(dir, "models", name)); err != nil {
			t.Errorf("expected %s to be saved: %v", name, err)
		}
	}
}

func TestTrain_NoSave(t *testing.T) {
	dir, cfgPath := testWorkspace(t)
	execute(t, "", "generate", "-c", cfgPath)

	out, err := execute(t, "", "train", "-c", cfgPath, "--no-save", "--json")
	if err != nil {
		t.Fatalf("train error: %v", err)
	}
	if !strings.Contains(out, `"saved": false`) {
		t.Errorf("unexpected output %s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "models")); !os.IsNotExist(err) {
		t.Error("nothing should be written with --no-save")
	}
}

func TestTrain_MissingData(t *testing.T) {
	_, cfgPath := testWorkspace(t)

	if _, err := execute(t, "", "train", "-c", cfgPath); err == nil {
		t.Error("expected error without a dataset")
	}
}

func TestPredict_Flags(t *testing.T) {
	_, cfgPath := trainedWorkspace(t)

	out, err := execute(t, "", "predict", "-c", cfgPath,
		"--attendance", "75", "--study-hours", "2", "--internal-marks", "20")
	if err != nil {
		t.Fatalf("predict error: %v", err)
	}

	for _, want := range []string{
		"Predicted Final Marks : 58.25",
		"Risk Level            : MEDIUM RISK",
		"- Excellent performance. Keep it up!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Enter") {
		t.Error("no prompt expected when every flag is set")
	}
}

func TestPredict_Prompts(t *testing.T) {
	_, cfgPath := trainedWorkspace(t)

	out, err := execute(t, "60\n1\n10\n", "predict", "-c", cfgPath)
	if err != nil {
		t.Fatalf("predict error: %v", err)
	}

	for _, want := range []string{
		"Enter Attendance (%): ",
		"Enter Study Hours per day: ",
		"Enter Internal Marks: ",
		"Predicted Final Marks : 37.00",
		"HIGH RISK",
		"- Increase attendance to improve performance.",
		"- Increase daily study hours.",
		"- Focus on internal assessments.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestPredict_PartialFlags(t *testing.T) {
	_, cfgPath := trainedWorkspace(t)

	out, err := execute(t, "20\n", "predict", "-c", cfgPath, "--attendance", "75", "--study-hours", "2")
	if err != nil {
		t.Fatalf("predict error: %v", err)
	}
	if strings.Contains(out, "Enter Attendance") || !strings.Contains(out, "Enter Internal Marks: ") {
		t.Errorf("only the missing value should be prompted:\n%s", out)
	}
}

func TestPredict_Errors(t *testing.T) {
	_, cfgPath := trainedWorkspace(t)

	_, err := execute(t, "", "predict", "-c", cfgPath, "--attendance", "120", "--study-hours", "2", "--internal-marks", "20")
	var invalid *dataset.InvalidInputError
	if !errors.As(err, &invalid) || invalid.Field != dataset.FeatureAttendance {
		t.Errorf("expected InvalidInputError on attendance, got %v", err)
	}

	if _, err := execute(t, "abc\n", "predict", "-c", cfgPath); err == nil {
		t.Error("expected error for a non-numeric answer")
	}
	if _, err := execute(t, "75\n", "predict", "-c", cfgPath); err == nil {
		t.Error("expected error when stdin ends early")
	}
	if _, err := execute(t, "", "predict", "-c", cfgPath, "--mode", "parent"); err == nil {
		t.Error("expected error for an unknown mode")
	}
}

func TestPredict_Untrained(t *testing.T) {
	_, cfgPath := testWorkspace(t)

	_, err := execute(t, "", "predict", "-c", cfgPath, "--attendance", "75", "--study-hours", "2", "--internal-marks", "20")
	if !errors.Is(err, artifact.ErrArtifactMissing) {
		t.Errorf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	_, cfgPath := trainedWorkspace(t)

	out, err := execute(t, "", "history", "-c", cfgPath)
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if !strings.Contains(out, "No predictions recorded yet.") {
		t.Errorf("unexpected output %q", out)
	}

	for _, obs := range [][]string{{"60", "1", "10"}, {"75", "2", "20"}} {
		if _, err := execute(t, "", "predict", "-c", cfgPath,
			"--attendance", obs[0], "--study-hours", obs[1], "--internal-marks", obs[2]); err != nil {
			t.Fatalf("predict error: %v", err)
		}
	}

	out, err = execute(t, "", "history", "-c", cfgPath)
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	for _, want := range []string{"Predictions: 2", "58.25", "37.00", "+21.25 since first"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "", "history", "-c", cfgPath, "--json", "--limit", "1")
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if strings.Count(out, `"predicted_marks"`) != 1 {
		t.Errorf("expected one record in JSON output:\n%s", out)
	}
}

func TestModel(t *testing.T) {
	_, cfgPath := trainedWorkspace(t)

	out, err := execute(t, "", "model", "-c", cfgPath)
	if err != nil {
		t.Fatalf("model error: %v", err)
	}
	for _, want := range []string{"Model:    Linear Regression (linear)", "160 train / 40 test", "R2 Score", "Attendance"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestConfig(t *testing.T) {
	dir, cfgPath := testWorkspace(t)

	out, err := execute(t, "", "config", "-c", cfgPath, "--validate")
	if err != nil || !strings.Contains(out, "Configuration is valid") {
		t.Errorf("expected valid config, got %q, %v", out, err)
	}

	out, err = execute(t, "", "config", "-c", cfgPath)
	if err != nil {
		t.Fatalf("config error: %v", err)
	}
	if !strings.Contains(out, "n_estimators: 10") || !strings.Contains(out, "max_divergence: 0.15") {
		t.Errorf("expected effective config merged over defaults:\n%s", out)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("training:\n  test_size: 1.5\n"), 0644)
	if _, err := execute(t, "", "config", "-c", bad, "--validate"); err == nil {
		t.Error("expected validation error")
	}
}

func TestStatus(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = false
	srv := server.New(cfg, server.Deps{}, logger.Discard(), "test")

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	h, p, err := net.SplitHostPort(strings.TrimPrefix(ts.URL, "http://"))
	if err != nil {
		t.Fatalf("parse test server address: %v", err)
	}
	_, cfgPath := testWorkspace(t)

	out, err := execute(t, "", "status", "-c", cfgPath, "--host", h, "--port", p)
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if !strings.Contains(out, "Model loaded:  false") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRetrain_NotEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = false
	srv := server.New(cfg, server.Deps{}, logger.Discard(), "test")

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	h, p, err := net.SplitHostPort(strings.TrimPrefix(ts.URL, "http://"))
	if err != nil {
		t.Fatalf("parse test server address: %v", err)
	}
	_, cfgPath := testWorkspace(t)

	_, err = execute(t, "", "retrain", "-c", cfgPath, "--host", h, "--port", p)
	if err == nil || !strings.Contains(err.Error(), "retraining is not enabled") {
		t.Errorf("expected server message in error, got %v", err)
	}
}

func TestStatus_NoServer(t *testing.T) {
	_, cfgPath := testWorkspace(t)

	// Reserve a port and release it so that nothing listens there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	if _, err := execute(t, "", "status", "-c", cfgPath, "--host", "127.0.0.1", "--port", strconv.Itoa(port)); err == nil {
		t.Error("expected error without a running server")
	}
}

func TestReadPIDFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte(content), 0644)
		return path
	}

	tests := []struct {
		name    string
		path    string
		want    int
		wantErr bool
	}{
		{"valid", write("ok.pid", "1234\n"), 1234, false},
		{"garbage", write("bad.pid", "abc"), 0, true},
		{"zero", write("zero.pid", "0"), 0, true},
		{"missing", filepath.Join(dir, "none.pid"), 0, true},
		{"unset", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPIDFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"train", "predict", "dashboard", "serve", "history", "model", "generate", "config", "status", "reload", "stop", "retrain"}

	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered", name)
		}
	}
}
