package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/recovery"
	"github.com/julianstephens/mindtrack/internal/tui/components/goallist"
)

const tabCount = int(constants.StateHelplines) + 1

// chromeHeight is the space taken by the tab bar, status line and help.
const chromeHeight = 5

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(dayTickMsg); ok {
		// An open form keeps the day it was opened on.
		if m.state != constants.StateCheckIn {
			if changed, err := m.syncToday(); err != nil {
				m.setError(err)
			} else if changed {
				m.refresh()
			}
		}
		return m, dayTick()
	}

	if m.state == constants.StateCheckIn {
		return m.updateCheckIn(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := max(msg.Height-chromeHeight, 0)
		m.dashboard.SetSize(msg.Width, h)
		m.goalList.SetSize(msg.Width, h)
		m.milestones.Width, m.milestones.Height = msg.Width, h
		m.helplines.Width, m.helplines.Height = msg.Width, h
		return m, nil

	case goallist.ProgressGoalMsg:
		m.applyProgress(msg)
		return m, nil

	case tea.KeyMsg:
		if m.state == constants.StateGoals && m.goalList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.CheckIn):
			if err := m.openCheckIn(); err != nil {
				m.setError(err)
				return m, nil
			}
			m.previousState = m.state
			m.state = constants.StateCheckIn
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case constants.StateGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case constants.StateMilestones:
		m.milestones, cmd = m.milestones.Update(msg)
	case constants.StateHelplines:
		m.helplines, cmd = m.helplines.Update(msg)
	}
	return m, cmd
}

func (m Model) updateCheckIn(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		entry, err := m.saveCheckIn()
		if err != nil {
			m.setError(fmt.Errorf("check-in not saved: %w", err))
		} else {
			m.setStatus(fmt.Sprintf("✓ Checked in for %s: %d%%", entry.EntryDate, recovery.DailyPercentage(entry)))
			m.refresh()
		}
		m.state = constants.StateDashboard
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m *Model) applyProgress(msg goallist.ProgressGoalMsg) {
	g, err := m.store.GetGoal(m.userID, msg.ID)
	if err != nil {
		m.setError(fmt.Errorf("failed to load goal: %w", err))
		return
	}
	wasCompleted := g.IsCompleted
	g.AddProgress(msg.Delta, m.now().UTC())
	if err := m.store.UpdateGoal(g); err != nil {
		m.setError(fmt.Errorf("failed to update goal: %w", err))
		return
	}
	m.afterWrite()
	if g.IsCompleted && !wasCompleted {
		m.setStatus("🎉 Goal completed: " + g.Title)
	} else {
		m.setStatus(fmt.Sprintf("%s: %g/%g %s", g.Title, g.CurrentValue, g.TargetValue, g.Unit))
	}
	m.refresh()
}
