package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindtrack/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case constants.StateGoals:
		content = docStyle.Render(m.goalList.View())
	case constants.StateMilestones:
		content = docStyle.Render(m.milestones.View())
	case constants.StateHelplines:
		content = docStyle.Render(m.helplines.View())
	case constants.StateCheckIn:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.state == constants.StateCheckIn {
		tabs = append(tabs, activeTabStyle.Render("Check-in"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}
