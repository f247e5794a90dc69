package evaluation

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("82")).Bold(true)
)

// RenderTable renders the comparison table. The row of the selected model
// is highlighted.
func RenderTable(sel *Selection) string {
	rows := make([][]string, 0, len(sel.Ranked))
	bestRow := -1
	for i, r := range sel.Ranked {
		name := r.Model
		if isFlagged(sel, r.Model) {
			name += " *"
		}
		if bestRow < 0 && r.Model == sel.Best.Model && sel.Index >= 0 {
			bestRow = i
		}
		rows = append(rows, []string{
			name,
			formatScore(r.MAE),
			formatScore(r.RMSE),
			formatScore(r.R2),
			formatScore(r.CVScore),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Model", "MAE", "RMSE", "R2 Score", "CV Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == bestRow:
				return bestStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// Summary returns the one-line description of the winner.
func Summary(sel *Selection) string {
	return fmt.Sprintf("Best Model: %s (R2 %s, MAE %s)",
		sel.Best.Model, formatScore(sel.Best.R2), formatScore(sel.Best.MAE))
}

func isFlagged(sel *Selection, name string) bool {
	for _, f := range sel.Flags {
		if f.Model == name {
			return true
		}
	}
	return false
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
