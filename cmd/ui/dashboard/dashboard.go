package dashboard

import (
	"context"
	"fmt"
	"poelauncher/cmd/ui/detection"
	"poelauncher/pkg/config"
	"poelauncher/pkg/detector"
	"poelauncher/pkg/launcher"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#E94560")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E94560")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6"))
)

// Detector is the part of *detector.Detector the dashboard drives
type Detector interface {
	Scan(ctx context.Context, hints detector.Hints) detector.Report
	Commit(cfg *config.Config, found detector.Result, force bool) []detector.Key
}

// Launcher is the part of *launcher.Launcher the dashboard drives
type Launcher interface {
	Launch(ctx context.Context, cfg *config.Config) launcher.Summary
}

type detectDoneMsg struct {
	report detector.Report
	force  bool
}

type launchDoneMsg struct {
	summary launcher.Summary
}

// row is one editable line of the dashboard
type row struct {
	label  string
	path   func(c *config.Config) string
	value  func(c *config.Config) bool
	toggle func(c *config.Config)
}

var rows = []row{
	{
		label: "Steam version",
		path:  func(c *config.Config) string { return c.SteamPath },
		value: func(c *config.Config) bool { return c.GameVersion == config.GameVersionSteam },
		toggle: func(c *config.Config) {
			if c.GameVersion == config.GameVersionSteam {
				c.GameVersion = config.GameVersionStandalone
			} else {
				c.GameVersion = config.GameVersionSteam
			}
		},
	},
	companionRow(config.CompanionAwakened),
	companionRow(config.CompanionLurker),
	companionRow(config.CompanionChaosRecipe),
	{
		label:  "Open FilterBlade",
		value:  func(c *config.Config) bool { return c.OpenFilterBlade },
		toggle: func(c *config.Config) { c.OpenFilterBlade = !c.OpenFilterBlade },
	},
	{
		label:  "Open trade site",
		value:  func(c *config.Config) bool { return c.OpenTradeSite },
		toggle: func(c *config.Config) { c.OpenTradeSite = !c.OpenTradeSite },
	},
}

func companionRow(comp config.Companion) row {
	return row{
		label:  comp.DisplayName(),
		path:   func(c *config.Config) string { return c.CompanionPath(comp) },
		value:  func(c *config.Config) bool { return c.AutoStart(comp) },
		toggle: func(c *config.Config) { c.SetAutoStart(comp, !c.AutoStart(comp)) },
	}
}

type model struct {
	cfg      *config.Config
	det      Detector
	launcher Launcher
	spinner  spinner.Model

	cursor int

	// detecting is set while a pass is in flight. A manual re-detect asked
	// for meanwhile sets queued and starts when the running pass is applied.
	detecting bool
	queued    bool
	launching bool

	status   string
	problems []string
	quitting bool
}

func newModel(cfg *config.Config, det Detector, l Launcher) model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = spinnerStyle
	return model{
		cfg:      cfg,
		det:      det,
		launcher: l,
		spinner:  s,

		// the fill-empty pass started by Init is in flight from the first frame
		detecting: true,
		status:    "Looking for installed programs...",
	}
}

// Init starts the fill-empty pass that runs on every start
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan(false))
}

// scan returns a command running one pass off the event loop. It only
// scans; the result is applied in Update.
func (m model) scan(force bool) tea.Cmd {
	det := m.det
	hints := detector.HintsFrom(m.cfg)
	return func() tea.Msg {
		return detectDoneMsg{report: det.Scan(context.Background(), hints), force: force}
	}
}

func (m *model) beginRedetect() tea.Cmd {
	m.detecting = true
	m.status = "Re-detecting all programs..."
	return m.scan(true)
}

func (m *model) beginLaunch() tea.Cmd {
	m.launching = true
	m.status = "Launching..."
	l := m.launcher
	snapshot := m.cfg.Clone()
	return func() tea.Msg {
		return launchDoneMsg{summary: l.Launch(context.Background(), snapshot)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case " ", "enter", "x":
			rows[m.cursor].toggle(m.cfg)
		case "r":
			if m.detecting {
				m.queued = true
				m.status = "Re-detect queued until the current pass finishes"
				return m, nil
			}
			return m, m.beginRedetect()
		case "l":
			if m.launching {
				return m, nil
			}
			if m.detecting {
				m.status = "Wait for detection to finish before launching"
				return m, nil
			}
			return m, m.beginLaunch()
		}
		return m, nil

	case detectDoneMsg:
		changed := m.det.Commit(m.cfg, msg.report.Found, msg.force)
		m.detecting = false
		m.problems = nil
		for _, st := range msg.report.Failed() {
			m.problems = append(m.problems, fmt.Sprintf("%s stage failed: %v", st.Stage, st.Err))
		}
		m.status = detection.Summary(msg.report)
		if len(changed) > 0 {
			m.status += fmt.Sprintf(", %d path(s) updated", len(changed))
		}
		if m.queued {
			m.queued = false
			return m, m.beginRedetect()
		}
		return m, nil

	case launchDoneMsg:
		m.launching = false
		m.problems = nil
		for _, err := range msg.summary.Errors {
			m.problems = append(m.problems, err.Error())
		}
		if len(msg.summary.Launched) == 0 {
			m.status = "Nothing was launched"
		} else {
			m.status = "Launched " + strings.Join(msg.summary.Launched, ", ")
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Path of Exile Launcher"))
	s.WriteString("\n\n")

	for i, r := range rows {
		cursor := "  "
		label := labelStyle.Render(r.label)
		if i == m.cursor {
			cursor = focusedStyle.Render("> ")
			label = focusedStyle.Render(r.label)
		}
		box := "[ ]"
		if r.value(m.cfg) {
			box = checkedStyle.Render("[x]")
		}
		s.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, label))
		if r.path != nil {
			if p := r.path(m.cfg); p != "" {
				s.WriteString("      " + pathStyle.Render(p) + "\n")
			} else {
				s.WriteString("      " + mutedStyle.Render("not found") + "\n")
			}
		}
	}

	if m.cfg.GameVersion == config.GameVersionStandalone {
		s.WriteString("\n" + mutedStyle.Render("Standalone: "))
		if m.cfg.StandalonePath != "" {
			s.WriteString(pathStyle.Render(m.cfg.StandalonePath))
		} else {
			s.WriteString(mutedStyle.Render("not found"))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.detecting || m.launching {
		s.WriteString(m.spinner.View() + " ")
	}
	s.WriteString(statusStyle.Render(m.status))
	s.WriteString("\n")
	for _, p := range m.problems {
		s.WriteString(errorStyle.Render("  ! "+p) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("space toggle • r re-detect • l launch • q quit"))
	return s.String()
}

// Run shows the dashboard until the user quits and returns the edited config
func Run(cfg *config.Config, det Detector, l Launcher) (*config.Config, error) {
	p := tea.NewProgram(newModel(cfg, det, l), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return cfg, fmt.Errorf("error running dashboard: %w", err)
	}
	return finalModel.(model).cfg, nil
}
