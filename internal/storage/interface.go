package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no live record.
	// It wraps sql.ErrNoRows so either sentinel can be tested with errors.Is.
	ErrNotFound = fmt.Errorf("record not found: %w", sql.ErrNoRows)
	// ErrConflict is returned when a write would create a second live
	// record where only one is allowed.
	ErrConflict = errors.New("conflicting record exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profiles
	GetProfile(userID string) (models.Profile, error)
	SaveProfile(models.Profile) error
	ListProfiles() ([]models.Profile, error)

	// Recovery entries
	// UpsertRecoveryEntry creates the user's entry for the entry's date, or
	// replaces the fields of the live entry already recorded for that date.
	// The stored entry is returned with its ID and timestamps populated.
	UpsertRecoveryEntry(models.RecoveryEntry) (models.RecoveryEntry, error)
	GetRecoveryEntry(userID string, date calendar.Date) (models.RecoveryEntry, error)
	// ListRecoveryEntries returns the user's entries newest first.
	ListRecoveryEntries(userID string, includeDeleted bool) ([]models.RecoveryEntry, error)
	// ListRecoveryEntriesBetween returns live entries with start <= date <= end, oldest first.
	ListRecoveryEntriesBetween(userID string, start, end calendar.Date) ([]models.RecoveryEntry, error)
	DeleteRecoveryEntry(userID string, date calendar.Date) error
	RestoreRecoveryEntry(userID string, date calendar.Date) error

	// Goals
	AddGoal(models.RecoveryGoal) error
	GetGoal(userID, id string) (models.RecoveryGoal, error)
	ListGoals(userID string) ([]models.RecoveryGoal, error)
	UpdateGoal(models.RecoveryGoal) error
	DeleteGoal(userID, id string) error

	// Milestones
	AddMilestone(models.RecoveryMilestone) error
	ListMilestones(userID string) ([]models.RecoveryMilestone, error)

	// Mood
	AddMoodEntry(models.MoodEntry) error
	// ListMoodEntries returns the most recent entries first; limit <= 0 returns all.
	ListMoodEntries(userID string, limit int) ([]models.MoodEntry, error)

	// Journal
	AddJournalEntry(models.JournalEntry) error
	GetJournalEntry(userID, id string) (models.JournalEntry, error)
	ListJournalEntries(userID string) ([]models.JournalEntry, error)
	UpdateJournalEntry(models.JournalEntry) error
	DeleteJournalEntry(userID, id string) error

	// Chat
	CreateConversation(models.Conversation) error
	GetConversation(userID, id string) (models.Conversation, error)
	ListConversations(userID string) ([]models.Conversation, error)
	// AddChatMessage appends a message and bumps the conversation's
	// message count and update time.
	AddChatMessage(models.ChatMessage) error
	ListChatMessages(conversationID string) ([]models.ChatMessage, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by providers whose schema is versioned.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion reports the applied schema version and the newest one
	// this build ships.
	SchemaVersion() (current, latest int, err error)
}
