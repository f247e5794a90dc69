package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/indhiran08-coder/student-performance-ai/internal/advisor"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
)

type assessMsg struct {
	outcome *advisor.Outcome
	err     error
}

type historyMsg struct {
	overview *advisor.Overview
	err      error
}

// assess runs a prediction as tea.Cmd
func assess(adv *advisor.Advisor, obs dataset.Observation) tea.Cmd {
	return func() tea.Msg {
		out, err := adv.Assess(obs)
		return assessMsg{outcome: out, err: err}
	}
}

// loadHistory reads the history log as tea.Cmd
func loadHistory(adv *advisor.Advisor) tea.Cmd {
	return func() tea.Msg {
		overview, err := adv.History()
		return historyMsg{overview: overview, err: err}
	}
}

func isHistoryFailure(err error) bool {
	var we *history.WriteError
	return errors.As(err, &we)
}
