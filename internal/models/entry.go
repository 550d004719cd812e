package models

import (
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
)

// RecoveryStatus is the self-reported trend for a day, independent of the score.
type RecoveryStatus string

const (
	StatusBetter RecoveryStatus = "better"
	StatusSame   RecoveryStatus = "same"
	StatusWorse  RecoveryStatus = "worse"
)

// Valid reports whether s is one of the known statuses.
func (s RecoveryStatus) Valid() bool {
	switch s {
	case StatusBetter, StatusSame, StatusWorse:
		return true
	}
	return false
}

// RecoveryEntry represents a single day's recovery check-in.
// There is at most one live entry per user and day.
type RecoveryEntry struct {
	ID                  string         `json:"id"`
	UserID              string         `json:"user_id"`
	EntryDate           calendar.Date  `json:"entry_date"`
	RecoveryStatus      RecoveryStatus `json:"recovery_status"`
	MoodScore           *int           `json:"mood_score,omitempty"`    // 1-10
	EnergyLevel         *int           `json:"energy_level,omitempty"`  // 1-10
	SleepQuality        *int           `json:"sleep_quality,omitempty"` // 1-10
	MedicationAdherence bool           `json:"medication_adherence"`
	TherapySession      bool           `json:"therapy_session"`
	ExerciseCompleted   bool           `json:"exercise_completed"`
	SocialConnection    bool           `json:"social_connection"`
	Notes               string         `json:"notes,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           *time.Time     `json:"deleted_at,omitempty"`
}

// Activities returns the four activity flags in a fixed order.
func (e RecoveryEntry) Activities() []bool {
	return []bool{e.MedicationAdherence, e.TherapySession, e.ExerciseCompleted, e.SocialConnection}
}

// CompletedActivities returns how many activity flags are set.
func (e RecoveryEntry) CompletedActivities() int {
	n := 0
	for _, done := range e.Activities() {
		if done {
			n++
		}
	}
	return n
}

// IntPtr returns a pointer to v, for populating optional scores.
func IntPtr(v int) *int {
	return &v
}
