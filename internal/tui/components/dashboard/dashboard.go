package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/helplines"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/recovery"
)

// maxGoals is how many active goals the dashboard lists.
const maxGoals = 3

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Summary  *recovery.Summary
	Goals    []models.RecoveryGoal
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Summary == nil {
		return "Loading..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetData(s recovery.Summary, goals []models.RecoveryGoal) {
	m.Summary = &s
	m.Goals = goals
	m.Render()
}

func (m *Model) Render() {
	if m.Summary == nil {
		m.viewport.SetContent("No data loaded.")
		return
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Recovery progress"))
	b.WriteString("\n\n")
	b.WriteString(cli.ProgressChart(*m.Summary))
	if !m.Summary.LoggedToday {
		b.WriteString(hintStyle.Render("Press 'c' to check in for today."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Active goals"))
	b.WriteString("\n")
	shown := 0
	for _, g := range m.Goals {
		if g.IsCompleted || g.Overdue(m.Summary.Today) {
			continue
		}
		if shown == maxGoals {
			break
		}
		b.WriteString(cli.GoalLine(g))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString(hintStyle.Render("No active goals."))
		b.WriteString("\n")
	}

	if lines := helplines.AroundTheClock(); len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf("Need to talk? %s: %s (24/7)", lines[0].Name, lines[0].Number)))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
