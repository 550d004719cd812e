package goallist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
)

// ProgressGoalMsg asks the parent to add Delta to a goal's progress.
type ProgressGoalMsg struct {
	ID    string
	Delta float64
}

type Item struct {
	Goal  models.RecoveryGoal
	today calendar.Date
}

func (i Item) Title() string {
	switch {
	case i.Goal.IsCompleted:
		return "✓ " + i.Goal.Title
	case i.Goal.Overdue(i.today):
		return "⚠ " + i.Goal.Title + " (overdue)"
	}
	return i.Goal.Title
}

func (i Item) Description() string {
	return fmt.Sprintf("%s %3d%% | %g/%g %s | %s until %s",
		cli.Bar(i.Goal.Percent(), 10), i.Goal.Percent(),
		i.Goal.CurrentValue, i.Goal.TargetValue, i.Goal.Unit,
		i.Goal.GoalType, i.Goal.EndDate)
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	Increment key.Binding
	Decrement key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add progress"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "undo progress"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	today calendar.Date
}

func New(goals []models.RecoveryGoal, today calendar.Date, width, height int) Model {
	l := list.New(items(goals, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Increment, keys.Decrement}
	}
	return Model{list: l, keys: keys, today: today}
}

func items(goals []models.RecoveryGoal, today calendar.Date) []list.Item {
	out := make([]list.Item, len(goals))
	for i, g := range goals {
		out[i] = Item{Goal: g, today: today}
	}
	return out
}

// SetGoals replaces the listed goals, judging overdue ones against today.
func (m *Model) SetGoals(goals []models.RecoveryGoal, today calendar.Date) {
	m.today = today
	m.list.SetItems(items(goals, today))
}

// Selected returns the highlighted goal.
func (m Model) Selected() (models.RecoveryGoal, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Goal, ok
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Increment, m.keys.Decrement}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Increment):
			if g, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ProgressGoalMsg{ID: g.ID, Delta: 1} }
			}
		case key.Matches(msg, m.keys.Decrement):
			if g, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ProgressGoalMsg{ID: g.ID, Delta: -1} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No goals yet.\n  Add one with 'mindtrack goal add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
