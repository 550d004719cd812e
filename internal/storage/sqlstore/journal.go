package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

const journalColumns = `id, user_id, title, content, mood, entry_date, created_at, updated_at`

func scanJournalEntry(row rowScanner) (models.JournalEntry, error) {
	var j models.JournalEntry
	var mood, createdAt, updatedAt string
	err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Content, &mood, &j.EntryDate, &createdAt, &updatedAt)
	if err != nil {
		return models.JournalEntry{}, err
	}

	j.Mood = models.JournalMood(mood)
	if j.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	if j.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	return j, nil
}

func (s *Store) AddJournalEntry(j models.JournalEntry) error {
	ts := now()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = ts
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = ts
	}

	_, err := s.exec(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.UserID, j.Title, j.Content, string(j.Mood), j.EntryDate,
		formatTime(j.CreatedAt), formatTime(j.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}
	return nil
}

func (s *Store) GetJournalEntry(userID, id string) (models.JournalEntry, error) {
	j, err := scanJournalEntry(s.queryRow(
		`SELECT `+journalColumns+` FROM journal_entries WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, storage.ErrNotFound)
	}
	return j, err
}

// ListJournalEntries returns the user's journal, newest entry date first.
func (s *Store) ListJournalEntries(userID string) ([]models.JournalEntry, error) {
	rows, err := s.query(`
		SELECT `+journalColumns+` FROM journal_entries
		WHERE user_id = ? ORDER BY entry_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		j, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, j)
	}
	return entries, rows.Err()
}

func (s *Store) UpdateJournalEntry(j models.JournalEntry) error {
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = now()
	}
	result, err := s.exec(`
		UPDATE journal_entries SET title = ?, content = ?, mood = ?, entry_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		j.Title, j.Content, string(j.Mood), j.EntryDate, formatTime(j.UpdatedAt), j.ID, j.UserID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return expectAffected(result, fmt.Errorf("journal entry %s: %w", j.ID, storage.ErrNotFound))
}

func (s *Store) DeleteJournalEntry(userID, id string) error {
	result, err := s.exec(`DELETE FROM journal_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return expectAffected(result, fmt.Errorf("journal entry %s: %w", id, storage.ErrNotFound))
}
