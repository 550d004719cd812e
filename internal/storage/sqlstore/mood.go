package sqlstore

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/models"
)

const moodColumns = `id, user_id, mood_level, emotions, triggers, additional_thoughts, entry_date, created_at`

func (s *Store) AddMoodEntry(m models.MoodEntry) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}
	emotions, err := marshalTags(m.Emotions)
	if err != nil {
		return fmt.Errorf("failed to encode emotions: %w", err)
	}
	triggers, err := marshalTags(m.Triggers)
	if err != nil {
		return fmt.Errorf("failed to encode triggers: %w", err)
	}

	_, err = s.exec(`
		INSERT INTO mood_entries (`+moodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.MoodLevel, emotions, triggers, m.Thoughts, m.EntryDate, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add mood entry: %w", err)
	}
	return nil
}

func (s *Store) ListMoodEntries(userID string, limit int) ([]models.MoodEntry, error) {
	query := `SELECT ` + moodColumns + ` FROM mood_entries WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var m models.MoodEntry
		var emotions, triggers, createdAt string
		if err := rows.Scan(&m.ID, &m.UserID, &m.MoodLevel, &emotions, &triggers,
			&m.Thoughts, &m.EntryDate, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(emotions), &m.Emotions); err != nil {
			return nil, fmt.Errorf("failed to decode emotions for mood entry %s: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(triggers), &m.Triggers); err != nil {
			return nil, fmt.Errorf("failed to decode triggers for mood entry %s: %w", m.ID, err)
		}
		if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}
