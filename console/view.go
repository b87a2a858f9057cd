package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robmorgan/lumen/cuelist"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	dotStyle     = helpStyle.Copy().UnsetMargins()
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	targetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

func (m model) View() string {
	v := m.view

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("Cue list: %s", v.Name)) + "\n\n")
	fmt.Fprintf(&s, "%s %s   BPM: %.1f   %s\n\n", m.spinner.View(), v.Status, v.Tempo, dotStyle.Render(v.Marker))

	if v.Status == cuelist.StatusTransitioning {
		fmt.Fprintf(&s, "Fading %d → %d  %s  %.1fs\n\n", v.FromCueID, v.TargetCueID, m.progress.ViewAs(v.Progress), v.Remaining.Seconds())
	}
	if v.Following {
		fmt.Fprintf(&s, "Auto-follow at %s\n\n", v.FollowDue.Format("15:04:05.0"))
	}
	if v.Learning {
		s.WriteString(targetStyle.Render(fmt.Sprintf("Learning: the next MIDI or OSC message triggers cue %d", v.LearnCueID)) + "\n\n")
	}

	for _, c := range v.Cues {
		s.WriteString(cueLine(v, c) + "\n")
	}

	if m.lastErr != nil {
		s.WriteString("\n" + errorStyle.Render(m.lastErr.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("(G)o (B)ack (L)earn\n\nPress q to exit\n"))

	if m.quitting {
		s.WriteString("\n")
	}
	return appStyle.Render(s.String())
}

func cueLine(v cuelist.View, c cuelist.CueSummary) string {
	marker := "  "
	style := dotStyle
	switch {
	case v.HasCurrent && c.ID == v.CurrentCueID:
		marker = "▶ "
		style = currentStyle
	case v.HasCurrent && c.ID == v.TargetCueID:
		marker = "» "
		style = targetStyle
	}

	line := fmt.Sprintf("%s%3d  %-24s %6s", marker, c.ID, c.Name, c.FadeDuration)
	if c.AutoFollow != nil {
		line += fmt.Sprintf("  follow %s", *c.AutoFollow)
	}
	if len(c.Triggers) > 0 {
		line += "  [" + strings.Join(c.Triggers, ", ") + "]"
	}
	return style.Render(line)
}
