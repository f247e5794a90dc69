package tui

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
	"github.com/indhiran08-coder/student-performance-ai/internal/inference"
	"github.com/indhiran08-coder/student-performance-ai/internal/model"
	"github.com/indhiran08-coder/student-performance-ai/internal/scaler"
)

func testAdvisor(t *testing.T) *advisor.Advisor {
	t.Helper()

	rows := dataset.Generate(dataset.GeneratorConfig{Rows: 60, Seed: 11})
	x, y := dataset.Matrix(rows)
	sc, err := scaler.Fit(x, dataset.FeatureNames)
	if err != nil {
		t.Fatalf("scaler.Fit error: %v", err)
	}
	scaled, _ := sc.TransformAll(x)
	fitted, err := model.NewLinearRegression().Fit(scaled, y)
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}

	engine, err := inference.New(&artifact.Artifact{
		Model:  fitted,
		Scaler: sc,
		Meta: artifact.Metadata{
			ModelName:          fitted.Name(),
			FeatureNames:       dataset.FeatureNames,
			FeatureImportances: fitted.FeatureImportances(),
		},
	}, dataset.DefaultLimits())
	if err != nil {
		t.Fatalf("inference.New error: %v", err)
	}

	log := history.NewCSVLog(filepath.Join(t.TempDir(), "history.csv"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return advisor.New(engine, decision.Dashboard(), log, logger)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg through Update and runs any resulting command until the
// model settles.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd == nil {
			break
		}
		msg = cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			break
		}
	}
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(Config{Advisor: testAdvisor(t), ShowAnalytics: true})

	obs := m.observation()
	if obs != dataset.NewObservation(75, 2, 20) {
		t.Errorf("unexpected defaults %+v", obs)
	}
	if !m.showAnalytics || m.focus != 0 {
		t.Errorf("unexpected initial state: analytics=%v focus=%d", m.showAnalytics, m.focus)
	}
	if m.View() != "Loading..." {
		t.Error("expected loading view before the window size is known")
	}
}

func TestSliders(t *testing.T) {
	m := NewModel(Config{Advisor: testAdvisor(t)})

	m = send(t, m, key("right"))
	if m.sliders[0].value != 76 {
		t.Errorf("expected attendance 76, got %v", m.sliders[0].value)
	}

	// Focus wraps around.
	m = send(t, m, key("up"))
	if m.focus != 2 {
		t.Fatalf("expected focus on internal marks, got %d", m.focus)
	}
	m = send(t, m, key("down"))
	m = send(t, m, key("down"))

	for i := 0; i < 10; i++ {
		m = send(t, m, key("right"))
	}
	if m.sliders[1].value != 6 {
		t.Errorf("study hours must stop at 6, got %v", m.sliders[1].value)
	}
	for i := 0; i < 10; i++ {
		m = send(t, m, key("left"))
	}
	if m.sliders[1].value != 0 {
		t.Errorf("study hours must stop at 0, got %v", m.sliders[1].value)
	}

	m = send(t, m, key("up"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.sliders[0].value != 86 {
		t.Errorf("expected a coarse step of 10, got %v", m.sliders[0].value)
	}
}

func TestPredict(t *testing.T) {
	m := NewModel(Config{Advisor: testAdvisor(t), ShowAnalytics: true})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = send(t, m, key("enter"))
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.outcome == nil {
		t.Fatal("expected an outcome")
	}
	if m.outcome.PredictedMarks != 58.25 || m.outcome.Grade != "C" || m.outcome.Risk != decision.RiskMedium {
		t.Errorf("unexpected outcome %+v", m.outcome.Assessment)
	}
	if m.overview == nil || m.overview.Trend.Count != 1 {
		t.Fatalf("history should be reloaded after a prediction, got %+v", m.overview)
	}

	view := m.View()
	for _, want := range []string{"58.25", "MEDIUM RISK", "Average", "Feature Importance", "Prediction History"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}

	m = send(t, m, key("right"))
	if !m.stale || !strings.Contains(m.View(), "inputs changed") {
		t.Error("changing a slider should mark the result stale")
	}
}

func TestToggleAnalytics(t *testing.T) {
	m := NewModel(Config{Advisor: testAdvisor(t), ShowAnalytics: true})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = send(t, m, key("a"))
	if m.showAnalytics {
		t.Fatal("expected analytics hidden")
	}
	if strings.Contains(m.View(), "Feature Importance") {
		t.Error("analytics should not be rendered when hidden")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(Config{Advisor: testAdvisor(t)})

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHistoryScroll(t *testing.T) {
	m := NewModel(Config{Advisor: testAdvisor(t)})
	for i := 0; i < 3; i++ {
		m = send(t, m, key("enter"))
	}

	m = send(t, m, key("["))
	m = send(t, m, key("["))
	m = send(t, m, key("["))
	if m.historyOffset != 2 {
		t.Errorf("offset must stop at the oldest record, got %d", m.historyOffset)
	}
	m = send(t, m, key("]"))
	if m.historyOffset != 1 {
		t.Errorf("expected offset 1, got %d", m.historyOffset)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		n      int
		want   string
	}{
		{"empty", nil, 10, ""},
		{"flat", []float64{5, 5, 5}, 10, "▁▁▁"},
		{"rising", []float64{0, 7}, 10, "▁█"},
		{"window", []float64{100, 0, 1, 2, 3, 4, 5, 6, 7}, 8, "▁▂▃▄▅▆▇█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sparkline(tt.values, tt.n); got != tt.want {
				t.Errorf("sparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
