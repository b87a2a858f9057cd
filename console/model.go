// Package console is the operator's terminal view of the cue list.
package console

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robmorgan/lumen/cuelist"
)

// Controller is the part of the cue master the console drives.
type Controller interface {
	View() cuelist.View
	Next() error
	Previous() error
	Learn(cueID uint32) error
	CancelLearn()
}

type model struct {
	control  Controller
	spinner  spinner.Model
	progress progress.Model // crossfade progress
	view     cuelist.View
	lastErr  error
	quitting bool
}

func newModel(control Controller) model {
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return model{
		control:  control,
		spinner:  s,
		progress: p,
		view:     control.View(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*25, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run shows the console until the operator quits or ctx is done.
func Run(ctx context.Context, control Controller) error {
	p := tea.NewProgram(newModel(control))
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}
