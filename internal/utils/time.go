package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/mindtrack/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ReminderDue reports whether now is at or past the HH:MM reminder time on now's day.
func ReminderDue(now time.Time, reminderTime string) (bool, error) {
	minutes, err := ParseTimeToMinutes(reminderTime)
	if err != nil {
		return false, fmt.Errorf("invalid reminder time %q: %w", reminderTime, err)
	}
	return now.Hour()*60+now.Minute() >= minutes, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
