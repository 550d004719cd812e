package models

import (
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
)

type JournalMood string

const (
	JournalHappy JournalMood = "happy"
	JournalGood  JournalMood = "good"
	JournalOkay  JournalMood = "okay"
	JournalLow   JournalMood = "low"
	JournalSad   JournalMood = "sad"
)

func (m JournalMood) Valid() bool {
	switch m {
	case JournalHappy, JournalGood, JournalOkay, JournalLow, JournalSad:
		return true
	}
	return false
}

type JournalEntry struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Mood      JournalMood   `json:"mood"`
	EntryDate calendar.Date `json:"entry_date"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
