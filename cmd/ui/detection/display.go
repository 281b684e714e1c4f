package detection

import (
	"fmt"
	"poelauncher/pkg/detector"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#E94560")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E94560")).Bold(true)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	warnStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Summary returns the one-line status shown after a pass
func Summary(report detector.Report) string {
	n := report.Count()
	if n == 1 {
		return "1 program found"
	}
	return fmt.Sprintf("%d programs found", n)
}

type model struct {
	report    detector.Report
	force     bool
	confirmed bool
	quitting  bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "y", "Y", "enter":
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Detection Results"))
	s.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#E94560")).
		Padding(1, 2).
		Width(80)

	applied := map[detector.Key]bool{}
	for _, k := range m.report.Applied {
		applied[k] = true
	}

	var content strings.Builder
	content.WriteString(focusedStyle.Render(Summary(m.report)))
	content.WriteString("\n\n")

	for _, k := range detector.AllKeys {
		path, ok := m.report.Found[k]
		if !ok {
			content.WriteString(helpStyle.Render(fmt.Sprintf("  - %s: not found", k.DisplayName())))
			content.WriteString("\n")
			continue
		}
		content.WriteString(successStyle.Render("  ✓ "))
		content.WriteString(selectedItemStyle.Render(k.DisplayName()))
		content.WriteString("\n")
		content.WriteString("      ")
		content.WriteString(descriptionStyle.Render(path))
		if applied[k] {
			content.WriteString(focusedStyle.Render("  (new)"))
		}
		content.WriteString("\n")
	}

	if failed := m.report.Failed(); len(failed) > 0 {
		content.WriteString("\n")
		for _, st := range failed {
			content.WriteString(warnStyle.Render(fmt.Sprintf("  ! %s: %v", st.Stage, st.Err)))
			content.WriteString("\n")
		}
	}

	s.WriteString(box.Render(content.String()))
	s.WriteString("\n\n")

	if len(m.report.Applied) == 0 {
		s.WriteString(focusedStyle.Render("Nothing to change. Save anyway?"))
	} else if m.force {
		s.WriteString(focusedStyle.Render(fmt.Sprintf("Replace %d configured path(s)?", len(m.report.Applied))))
	} else {
		s.WriteString(focusedStyle.Render(fmt.Sprintf("Fill in %d empty path(s)?", len(m.report.Applied))))
	}
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press "))
	s.WriteString(focusedStyle.Render("y"))
	s.WriteString(helpStyle.Render(" to save, "))
	s.WriteString(focusedStyle.Render("n"))
	s.WriteString(helpStyle.Render(" to discard, or "))
	s.WriteString(focusedStyle.Render("q"))
	s.WriteString(helpStyle.Render(" to quit"))

	return s.String()
}

// ShowDetectionResults displays a finished pass and asks whether the updated
// configuration should be saved.
func ShowDetectionResults(report detector.Report, force bool) (bool, error) {
	m := model{
		report: report,
		force:  force,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("error showing detection results: %w", err)
	}

	final := finalModel.(model)
	return final.confirmed, nil
}
