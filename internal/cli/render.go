package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/recovery"
)

const chartWidth = 20

// Bar renders percent (0-100) as a fixed-width bar.
func Bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ProgressChart renders the weekly window and its summary figures.
func ProgressChart(s recovery.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s\n\n", s.Today.StartOfWeek())
	for _, p := range s.Window {
		marker := " "
		if p.Date == s.Today {
			marker = ">"
		}
		value := "  -"
		if p.Entry != nil {
			value = fmt.Sprintf("%3d%%", p.Percentage)
		}
		fmt.Fprintf(&b, "%s %-5s %s %s\n", marker, p.Day, Bar(p.Percentage, chartWidth), value)
	}

	fmt.Fprintf(&b, "\nWeekly average: %d%% (%s)\n", s.Average, s.Classification)
	fmt.Fprintf(&b, "Current streak: %d day(s)\n", s.Streak)
	if s.LoggedToday {
		fmt.Fprintf(&b, "Today: %d%%\n", s.TodayPercentage)
	} else {
		b.WriteString("Today: not checked in yet\n")
	}
	fmt.Fprintf(&b, "Days logged this week: %d/%d\n", s.DaysLogged, len(s.Window))
	return b.String()
}

// GoalLine renders a one-line goal summary with a progress bar.
func GoalLine(g models.RecoveryGoal) string {
	return fmt.Sprintf("%s %3d%%  %s (%g/%g %s)", Bar(g.Percent(), 10), g.Percent(), g.Title, g.CurrentValue, g.TargetValue, g.Unit)
}

// ScoreText renders an optional 1-10 score.
func ScoreText(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d/10", *v)
}
