package console

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "g", " ", "space":
			m.lastErr = m.control.Next()
		case "b":
			m.lastErr = m.control.Previous()
		case "l":
			m.lastErr = m.toggleLearn()
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		m.view = m.control.View()
		return m, nil
	case tickMsg:
		m.view = m.control.View()
		return m, tickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// toggleLearn arms learn mode on the cue playback is heading to, or disarms it.
func (m model) toggleLearn() error {
	if m.view.Learning {
		m.control.CancelLearn()
		return nil
	}
	target := m.view.TargetCueID
	if !m.view.HasCurrent && len(m.view.Cues) > 0 {
		target = m.view.Cues[0].ID
	}
	return m.control.Learn(target)
}
