// Package recovery derives progress figures from recovery check-ins: the
// daily wellness percentage, the Monday-based weekly window, its average,
// the current streak and a coarse progress label. Every function is pure and
// total over its inputs; callers recompute from whatever snapshot of entries
// they hold.
package recovery

import (
	"math"
	"sort"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
)

// Scores are the three subjective ratings of an entry after defaulting.
type Scores struct {
	Mood   int
	Energy int
	Sleep  int
}

// ScoresWithDefaults returns the entry's ratings with every missing value
// replaced by constants.DefaultScore. Values are not range-checked here;
// capture-time validation owns that.
func ScoresWithDefaults(e models.RecoveryEntry) Scores {
	return Scores{
		Mood:   valueOrDefault(e.MoodScore),
		Energy: valueOrDefault(e.EnergyLevel),
		Sleep:  valueOrDefault(e.SleepQuality),
	}
}

func valueOrDefault(v *int) int {
	if v == nil {
		return constants.DefaultScore
	}
	return *v
}

// BaseScore maps the mean rating onto a 0-100 scale (a mean of 10 gives 100).
func (s Scores) BaseScore() int {
	sum := s.Mood + s.Energy + s.Sleep
	return int(math.Round(float64(sum) / 3 * constants.ScoreToPercentage))
}

// ActivityBonus returns the flat bonus earned by completed activities.
func ActivityBonus(e models.RecoveryEntry) int {
	return e.CompletedActivities() * constants.ActivityBonus
}

// DailyPercentage scores a single entry. The base score and activity bonus
// are summed and clamped to [0, 100].
func DailyPercentage(e models.RecoveryEntry) int {
	return clampPercentage(ScoresWithDefaults(e).BaseScore() + ActivityBonus(e))
}

func clampPercentage(p int) int {
	if p > constants.MaxPercentage {
		return constants.MaxPercentage
	}
	if p < 0 {
		return 0
	}
	return p
}

// WeeklyDataPoint is one day of the weekly window.
type WeeklyDataPoint struct {
	Date       calendar.Date         `json:"date"`
	Day        string                `json:"day"`
	Percentage int                   `json:"percentage"`
	Entry      *models.RecoveryEntry `json:"entry,omitempty"`
}

// BuildWeeklyWindow returns the seven days of today's ISO week, Monday first.
// Days without an entry score 0 and carry no entry. The day equal to today is
// labelled "Today"; the rest use their short weekday name.
func BuildWeeklyWindow(today calendar.Date, entries []models.RecoveryEntry) []WeeklyDataPoint {
	byDate := make(map[calendar.Date]models.RecoveryEntry, len(entries))
	for _, e := range entries {
		byDate[e.EntryDate] = e
	}

	start := today.StartOfWeek()
	window := make([]WeeklyDataPoint, 0, constants.DaysInWeek)
	for i := 0; i < constants.DaysInWeek; i++ {
		date := start.AddDays(i)
		point := WeeklyDataPoint{
			Date: date,
			Day:  dayLabel(date, today),
		}
		if e, ok := byDate[date]; ok {
			entry := e
			point.Percentage = DailyPercentage(entry)
			point.Entry = &entry
		}
		window = append(window, point)
	}
	return window
}

func dayLabel(date, today calendar.Date) string {
	if date == today {
		return constants.TodayLabel
	}
	return date.Weekday().String()[:3]
}

// Average returns the rounded mean percentage of the window. An empty window
// averages to 0.
func Average(window []WeeklyDataPoint) int {
	if len(window) == 0 {
		return 0
	}
	sum := 0
	for _, p := range window {
		sum += p.Percentage
	}
	return int(math.Round(float64(sum) / float64(len(window))))
}

// Streak counts consecutive days with an entry, ending today. The run must
// include today: if the most recent entry is not today's, the streak is 0.
// Entries are sorted here; callers need not pre-sort.
func Streak(entries []models.RecoveryEntry, today calendar.Date) int {
	if len(entries) == 0 {
		return 0
	}

	dates := make([]calendar.Date, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.EntryDate)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	streak := 0
	expected := today
	for _, d := range dates {
		if streak > 0 && d == expected.AddDays(1) {
			// duplicate of the day just counted
			continue
		}
		if d != expected {
			break
		}
		streak++
		expected = expected.AddDays(-1)
	}
	return streak
}

// ClassifyProgress maps a percentage to its progress label.
func ClassifyProgress(percentage int) string {
	switch {
	case percentage >= constants.ExcellentThreshold:
		return constants.LabelExcellent
	case percentage >= constants.GoodThreshold:
		return constants.LabelGood
	case percentage >= constants.FairThreshold:
		return constants.LabelFair
	default:
		return constants.LabelNeedsAttention
	}
}
