package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("86")  // Cyan
	colorSecondary = lipgloss.Color("240") // Gray
	colorSuccess   = lipgloss.Color("82")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("245") // Light gray
)

// Styles
var (
	// Title bar
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Help text
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Section headers
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				MarginTop(1)

	// Sliders
	sliderFillStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	sliderEmptyStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Table
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				BorderBottom(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorSecondary)

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Values
	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	barStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Error
	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)
)

// riskColor returns the badge color for a risk level.
func riskColor(r decision.Risk) lipgloss.Color {
	switch r {
	case decision.RiskLow:
		return colorSuccess
	case decision.RiskMedium:
		return colorWarning
	default:
		return colorDanger
	}
}

func riskBadge(r decision.Risk, label string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(riskColor(r)).
		Padding(0, 1).
		Render(label)
}
