package models

import (
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
)

// Profile holds the user's personal details. Its ID is the user ID every
// other record is scoped to.
type Profile struct {
	ID                string        `json:"id"`
	FullName          string        `json:"full_name,omitempty"`
	Email             string        `json:"email,omitempty"`
	Phone             string        `json:"phone,omitempty"`
	Location          string        `json:"location,omitempty"`
	Bio               string        `json:"bio,omitempty"`
	DateOfBirth       calendar.Date `json:"date_of_birth,omitempty"`
	ProfilePictureURL string        `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// DaysActive returns the number of days since the profile was created,
// counting a partial day as a full one.
func (p Profile) DaysActive(now time.Time) int {
	if p.CreatedAt.IsZero() || now.Before(p.CreatedAt) {
		return 0
	}
	hours := now.Sub(p.CreatedAt).Hours()
	days := int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days
}
