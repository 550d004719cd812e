package models

import (
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
)

// MoodEntry is a quick mood log, separate from the daily recovery check-in.
// Several may be recorded on the same day.
type MoodEntry struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	MoodLevel int           `json:"mood_level"` // 1-10
	Emotions  []string      `json:"emotions,omitempty"`
	Triggers  []string      `json:"triggers,omitempty"`
	Thoughts  string        `json:"additional_thoughts,omitempty"`
	EntryDate calendar.Date `json:"entry_date"`
	CreatedAt time.Time     `json:"created_at"`
}

// AverageMood returns the mean mood level, or 0 for no entries.
func AverageMood(entries []MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.MoodLevel
	}
	return float64(sum) / float64(len(entries))
}
