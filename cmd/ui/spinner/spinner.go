package spinner

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct{}

type model struct {
	spinner   spinner.Model
	message   string
	done      bool
	cancelled bool
}

func InitialModel(message string) model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6"))
	return model{
		spinner: s,
		message: message,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// Run shows message next to a spinner while work runs on its own goroutine.
// It returns once work has finished and the spinner line is cleared. The
// returned bool is false if the user pressed ctrl+c; work still completes.
func Run(message string, work func()) (bool, error) {
	p := tea.NewProgram(InitialModel(message))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		work()
		p.Send(doneMsg{})
	}()

	final, err := p.Run()
	<-finished
	if err != nil {
		return true, fmt.Errorf("error running spinner: %w", err)
	}
	return !final.(model).cancelled, nil
}
