package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadHistory(m.config.Advisor)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case assessMsg:
		if msg.outcome == nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.warning = ""
		if isHistoryFailure(msg.err) {
			m.warning = "prediction not saved to history: " + msg.err.Error()
		}
		m.outcome = msg.outcome
		m.stale = false
		m.lastPredicted = time.Now()
		m.historyOffset = 0
		return m, loadHistory(m.config.Advisor)

	case historyMsg:
		if msg.err != nil {
			// Don't override prediction error
			if m.err == nil {
				m.err = msg.err
			}
		} else {
			m.overview = msg.overview
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "enter", "p":
		return m, assess(m.config.Advisor, m.observation())

	case "a":
		m.showAnalytics = !m.showAnalytics
		return m, nil

	case "r":
		return m, loadHistory(m.config.Advisor)

	case "up", "k", "shift+tab":
		m.focus = (m.focus + len(m.sliders) - 1) % len(m.sliders)
		return m, nil

	case "down", "j", "tab":
		m.focus = (m.focus + 1) % len(m.sliders)
		return m, nil

	case "left", "h":
		return m.adjust(-1), nil

	case "right", "l":
		return m.adjust(1), nil

	case "pgdown", "shift+left":
		return m.adjust(-10), nil

	case "pgup", "shift+right":
		return m.adjust(10), nil

	case "[":
		if m.overview != nil && m.historyOffset < len(m.overview.Records)-1 {
			m.historyOffset++
		}
		return m, nil

	case "]":
		if m.historyOffset > 0 {
			m.historyOffset--
		}
		return m, nil
	}

	return m, nil
}

// adjust moves the focused slider. The shown result no longer matches the
// inputs until the next prediction.
func (m Model) adjust(steps float64) Model {
	sliders := make([]slider, len(m.sliders))
	copy(sliders, m.sliders)

	before := sliders[m.focus].value
	sliders[m.focus].move(steps)
	if sliders[m.focus].value != before && m.outcome != nil {
		m.stale = true
	}
	m.sliders = sliders
	return m
}
