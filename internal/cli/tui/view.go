package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
)

const (
	sliderWidth    = 30
	importanceBar  = 24
	sparkLength    = 40
	visibleHistory = 5
)

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTitleBar(),
		m.renderControls(),
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.warning != "" {
		sections = append(sections, warningStyle.Render("  "+m.warning))
	}

	if m.outcome != nil {
		sections = append(sections, m.renderOutcome())
	}

	if m.showAnalytics {
		sections = append(sections, m.renderImportances())
		if m.overview != nil && m.overview.Trend.Count > 0 {
			sections = append(sections, m.renderTrend(), m.renderHistory())
		}
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := titleStyle.Render("STUDENT PERFORMANCE PREDICTOR")
	help := helpStyle.Render("↑↓:select ←→:adjust enter:predict a:analytics q:quit")

	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(help) - 2
	if spacing < 1 {
		spacing = 1
	}

	return fmt.Sprintf("%s%s%s", title, strings.Repeat(" ", spacing), help)
}

func (m Model) renderControls() string {
	lines := []string{sectionHeaderStyle.Render("  Student Control Panel")}

	for i, s := range m.sliders {
		filled := int(math.Round(s.fraction() * sliderWidth))
		bar := sliderFillStyle.Render(strings.Repeat("█", filled)) +
			sliderEmptyStyle.Render(strings.Repeat("░", sliderWidth-filled))

		cursor, label := "  ", labelStyle.Render(fmt.Sprintf("%-18s", s.label))
		if i == m.focus {
			cursor, label = focusStyle.Render("▸ "), focusStyle.Render(fmt.Sprintf("%-18s", s.label))
		}

		lines = append(lines, fmt.Sprintf("  %s%s [%s] %s", cursor, label, bar,
			valueStyle.Render(fmt.Sprintf("%3s / %s", formatValue(s.value), formatValue(s.max)))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderOutcome() string {
	out := m.outcome
	header := "  Prediction"
	if m.stale {
		header += helpStyle.Render("  (inputs changed, press enter to update)")
	}

	lines := []string{
		sectionHeaderStyle.Render(header),
		fmt.Sprintf("  %s %s   %s %s   %s",
			labelStyle.Render("Predicted Marks:"), valueStyle.Render(strconv.FormatFloat(out.PredictedMarks, 'f', 2, 64)),
			labelStyle.Render("Grade:"), valueStyle.Render(out.Grade),
			riskBadge(out.Risk, fmt.Sprintf("%s RISK · %s", out.Risk, out.Category)),
		),
	}

	if len(out.WeakAreas) > 0 {
		lines = append(lines, fmt.Sprintf("  %s %s",
			labelStyle.Render("Weak areas:"), warningStyle.Render(strings.Join(out.WeakAreas, ", "))))
	}
	for _, rec := range out.Recommendations {
		lines = append(lines, "  • "+rec)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderImportances() string {
	lines := []string{sectionHeaderStyle.Render("  Feature Importance")}
	if m.config.Advisor == nil {
		return lines[0]
	}

	weights := m.config.Advisor.Engine().Importances()
	for _, name := range dataset.FeatureNames {
		w := weights[name]
		filled := int(math.Round(w * importanceBar))
		lines = append(lines, fmt.Sprintf("  %s %s %5.1f%%",
			labelStyle.Render(fmt.Sprintf("%-14s", name)),
			barStyle.Render(strings.Repeat("█", filled)+strings.Repeat(" ", importanceBar-filled)),
			w*100))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderTrend() string {
	t := m.overview.Trend
	return strings.Join([]string{
		sectionHeaderStyle.Render("  Performance Trend"),
		"  " + barStyle.Render(sparkline(t.Series, sparkLength)),
		helpStyle.Render(fmt.Sprintf("  mean %.2f │ min %.2f │ max %.2f │ latest %.2f (%+.2f)",
			t.Mean, t.Min, t.Max, t.Latest, t.Change)),
	}, "\n")
}

func (m Model) renderHistory() string {
	records := m.overview.Records
	lines := []string{
		sectionHeaderStyle.Render("  Prediction History"),
		tableHeaderStyle.Render(fmt.Sprintf("  %10s │ %11s │ %8s │ %9s │ %-6s │ %-5s",
			"Attendance", "Study Hours", "Internal", "Predicted", "Risk", "Grade")),
	}

	// Newest first.
	end := len(records) - m.historyOffset
	start := end - visibleHistory
	if start < 0 {
		start = 0
	}
	for i := end - 1; i >= start; i-- {
		lines = append(lines, tableCellStyle.Render(formatRecord(records[i])))
	}

	if len(records) > visibleHistory {
		lines = append(lines, helpStyle.Render(fmt.Sprintf("  [%d-%d of %d records] [/]:scroll",
			len(records)-end+1, len(records)-start, len(records))))
	}

	return strings.Join(lines, "\n")
}

func formatRecord(r history.Record) string {
	return fmt.Sprintf("  %10s │ %11s │ %8s │ %9.2f │ %-6s │ %-5s",
		formatValue(r.Attendance), formatValue(r.StudyHours), formatValue(r.InternalMarks),
		r.PredictedMarks, r.Risk, r.Grade)
}

func (m Model) renderFooter() string {
	parts := []string{}
	if m.config.Advisor != nil {
		meta := m.config.Advisor.Engine().Metadata()
		parts = append(parts, "Model: "+meta.ModelName, "Rules: "+m.config.Advisor.Rules().Name)
	}
	if m.overview != nil {
		parts = append(parts, fmt.Sprintf("History: %d", m.overview.Trend.Count))
	}
	if !m.lastPredicted.IsZero() {
		parts = append(parts, "Updated: "+m.lastPredicted.Format("15:04:05"))
	}

	return "\n" + helpStyle.Render("  "+strings.Join(parts, " │ "))
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the last n values scaled between their min and max.
func sparkline(values []float64, n int) string {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkRunes)-1)))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
