package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI application
func Run(cfg Config) error {
	if cfg.Advisor == nil {
		return fmt.Errorf("dashboard needs a trained model")
	}

	p := tea.NewProgram(
		NewModel(cfg),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
