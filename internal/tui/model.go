package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/helplines"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/recovery"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/tui/components/dashboard"
	"github.com/julianstephens/mindtrack/internal/tui/components/goallist"
)

var tabTitles = []string{"Dashboard", "Goals", "Milestones", "Helplines"}

// Options connects the model to the user's clock and the host's hooks.
type Options struct {
	// Today returns the user's current calendar day. Defaults to the local day.
	Today func() (calendar.Date, error)
	// Now stamps goal progress. Defaults to time.Now.
	Now func() time.Time
	// AfterWrite runs after every successful write to the store.
	AfterWrite func()
}

// dayTickMsg asks the model to check whether the calendar day has rolled over.
type dayTickMsg struct{}

const dayTickInterval = time.Minute

type Model struct {
	store      storage.Provider
	userID     string
	today      calendar.Date
	todayFunc  func() (calendar.Date, error)
	now        func() time.Time
	afterWrite func()
	state      constants.SessionState
	// previousState is restored when the check-in form closes.
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	dashboard     dashboard.Model
	goalList      goallist.Model
	milestones    viewport.Model
	helplines     viewport.Model
	form          *huh.Form
	checkIn       *CheckInFormModel
	checkInDate   calendar.Date
	status        string
	statusErr     bool
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI for userID.
func NewModel(store storage.Provider, userID string, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Today == nil {
		opts.Today = func() (calendar.Date, error) { return calendar.Today(time.Local), nil }
	}
	if opts.AfterWrite == nil {
		opts.AfterWrite = func() {}
	}
	m := Model{
		store:      store,
		userID:     userID,
		todayFunc:  opts.Today,
		now:        opts.Now,
		afterWrite: opts.AfterWrite,
		state:      constants.StateDashboard,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		dashboard:  dashboard.New(0, 0),
		goalList:   goallist.New(nil, calendar.Date{}, 0, 0),
		milestones: viewport.New(0, 0),
		helplines:  viewport.New(0, 0),
	}
	m.helplines.SetContent(renderHelplines())
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.CheckIn, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateGoals {
		keys = append(keys, m.goalList.ShortHelp()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	groups := m.keys.FullHelp()
	if m.state == constants.StateGoals {
		groups = append(groups, m.goalList.ShortHelp())
	}
	return groups
}

func (m Model) Init() tea.Cmd {
	return dayTick()
}

func dayTick() tea.Cmd {
	return tea.Tick(dayTickInterval, func(time.Time) tea.Msg { return dayTickMsg{} })
}

// syncToday re-reads the user's current day so a session left open past
// midnight moves on with the clock. It reports whether the day changed.
func (m *Model) syncToday() (bool, error) {
	today, err := m.todayFunc()
	if err != nil {
		return false, fmt.Errorf("failed to determine today: %w", err)
	}
	changed := today != m.today
	m.today = today
	return changed, nil
}

// refresh reloads everything shown from the store.
func (m *Model) refresh() {
	if _, err := m.syncToday(); err != nil {
		m.setError(err)
		return
	}
	entries, err := m.store.ListRecoveryEntries(m.userID, false)
	if err != nil {
		m.setError(fmt.Errorf("failed to load check-ins: %w", err))
		return
	}
	goals, err := m.store.ListGoals(m.userID)
	if err != nil {
		m.setError(fmt.Errorf("failed to load goals: %w", err))
		return
	}
	milestones, err := m.store.ListMilestones(m.userID)
	if err != nil {
		m.setError(fmt.Errorf("failed to load milestones: %w", err))
		return
	}

	m.dashboard.SetData(recovery.Summarize(m.today, entries), goals)
	m.goalList.SetGoals(goals, m.today)
	m.milestones.SetContent(renderMilestones(milestones))
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func renderMilestones(milestones []models.RecoveryMilestone) string {
	if len(milestones) == 0 {
		return "No milestones yet.\nRecord one with 'mindtrack milestone add'."
	}
	var b strings.Builder
	for _, ms := range milestones {
		fmt.Fprintf(&b, "🏆 %s  %s %s\n", ms.AchievedDate, headingStyle.Render(ms.Title), mutedStyle.Render("("+string(ms.MilestoneType)+")"))
		if ms.Description != "" {
			fmt.Fprintf(&b, "    %s\n", ms.Description)
		}
	}
	return b.String()
}

func renderHelplines() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Crisis support"))
	b.WriteString("\n\n")
	for _, h := range helplines.All() {
		fmt.Fprintf(&b, "%s  %s\n", headingStyle.Render(h.Number), h.Name)
		fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(h.Hours+" | "+h.Description))
	}
	b.WriteString("\n")
	for _, tip := range helplines.EmergencyTips() {
		fmt.Fprintf(&b, "• %s\n", tip)
	}
	return b.String()
}
