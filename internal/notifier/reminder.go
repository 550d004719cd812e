package notifier

import (
	"fmt"
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/utils"
)

// CheckInReminder decides whether a check-in reminder is due at now, which
// must already be in the user's timezone. streak is the run of logged days
// ending yesterday. At most one reminder is due per day. It returns the
// message to show.
func CheckInReminder(settings models.Settings, now time.Time, loggedToday bool, streak int) (string, bool) {
	if !settings.ReminderEnabled || loggedToday {
		return "", false
	}
	if settings.LastReminderDate == calendar.FromTime(now).String() {
		return "", false
	}
	due, err := utils.ReminderDue(now, settings.ReminderTime)
	if err != nil || !due {
		return "", false
	}
	if streak > 0 {
		return fmt.Sprintf("You haven't checked in today. Keep your %d-day streak going!", streak), true
	}
	return "You haven't checked in today. How are you feeling?", true
}
