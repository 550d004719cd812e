package recovery

import (
	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/models"
)

// Summary bundles the figures shown on the progress views.
type Summary struct {
	Today           calendar.Date     `json:"today"`
	Window          []WeeklyDataPoint `json:"window"`
	Average         int               `json:"average"`
	Classification  string            `json:"classification"`
	Streak          int               `json:"streak"`
	TodayPercentage int               `json:"today_percentage"`
	LoggedToday     bool              `json:"logged_today"`
	DaysLogged      int               `json:"days_logged"`
}

// Summarize computes every progress figure for today from one snapshot of entries.
func Summarize(today calendar.Date, entries []models.RecoveryEntry) Summary {
	window := BuildWeeklyWindow(today, entries)
	avg := Average(window)

	s := Summary{
		Today:          today,
		Window:         window,
		Average:        avg,
		Classification: ClassifyProgress(avg),
		Streak:         Streak(entries, today),
	}
	for _, p := range window {
		if p.Entry == nil {
			continue
		}
		s.DaysLogged++
		if p.Date == today {
			s.LoggedToday = true
			s.TodayPercentage = p.Percentage
		}
	}
	return s
}
