package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

const entryColumns = `id, user_id, entry_date, recovery_status, mood_score, energy_level,
	sleep_quality, medication_adherence, therapy_session, exercise_completed,
	social_connection, notes, created_at, updated_at, deleted_at`

func scanEntry(row rowScanner) (models.RecoveryEntry, error) {
	var e models.RecoveryEntry
	var status, createdAt, updatedAt string
	var mood, energy, sleep sql.NullInt64
	var deletedAt sql.NullString

	err := row.Scan(&e.ID, &e.UserID, &e.EntryDate, &status, &mood, &energy, &sleep,
		&e.MedicationAdherence, &e.TherapySession, &e.ExerciseCompleted,
		&e.SocialConnection, &e.Notes, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return models.RecoveryEntry{}, err
	}

	e.RecoveryStatus = models.RecoveryStatus(status)
	e.MoodScore = intPtr(mood)
	e.EnergyLevel = intPtr(energy)
	e.SleepQuality = intPtr(sleep)

	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.RecoveryEntry{}, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.RecoveryEntry{}, err
	}
	if e.DeletedAt, err = parseNullTime("deleted_at", deletedAt); err != nil {
		return models.RecoveryEntry{}, err
	}
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]models.RecoveryEntry, error) {
	defer rows.Close()

	var entries []models.RecoveryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertRecoveryEntry keeps at most one live entry per user and day. Saving
// an entry for a day that already has one updates it in place, keeping its
// ID and created_at.
func (s *Store) UpsertRecoveryEntry(e models.RecoveryEntry) (models.RecoveryEntry, error) {
	ts := now()
	err := s.withTx(func(tx *sql.Tx) error {
		existing, err := scanEntry(s.txQueryRow(tx,
			`SELECT `+entryColumns+` FROM recovery_entries
			WHERE user_id = ? AND entry_date = ? AND deleted_at IS NULL`,
			e.UserID, e.EntryDate))

		switch {
		case err == nil:
			e.ID = existing.ID
			e.CreatedAt = existing.CreatedAt
			e.UpdatedAt = ts
			e.DeletedAt = nil
			_, err = s.txExec(tx, `
				UPDATE recovery_entries SET
					recovery_status = ?, mood_score = ?, energy_level = ?, sleep_quality = ?,
					medication_adherence = ?, therapy_session = ?, exercise_completed = ?,
					social_connection = ?, notes = ?, updated_at = ?
				WHERE id = ?`,
				string(e.RecoveryStatus), nullInt(e.MoodScore), nullInt(e.EnergyLevel), nullInt(e.SleepQuality),
				e.MedicationAdherence, e.TherapySession, e.ExerciseCompleted,
				e.SocialConnection, e.Notes, formatTime(e.UpdatedAt), e.ID)
			return err

		case errors.Is(err, sql.ErrNoRows):
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			if e.CreatedAt.IsZero() {
				e.CreatedAt = ts
			}
			e.UpdatedAt = ts
			e.DeletedAt = nil
			_, err = s.txExec(tx, `
				INSERT INTO recovery_entries (`+entryColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
				e.ID, e.UserID, e.EntryDate, string(e.RecoveryStatus),
				nullInt(e.MoodScore), nullInt(e.EnergyLevel), nullInt(e.SleepQuality),
				e.MedicationAdherence, e.TherapySession, e.ExerciseCompleted,
				e.SocialConnection, e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
			return err

		default:
			return err
		}
	})
	if err != nil {
		return models.RecoveryEntry{}, fmt.Errorf("failed to save recovery entry for %s: %w", e.EntryDate, err)
	}
	return e, nil
}

func (s *Store) GetRecoveryEntry(userID string, date calendar.Date) (models.RecoveryEntry, error) {
	e, err := scanEntry(s.queryRow(
		`SELECT `+entryColumns+` FROM recovery_entries
		WHERE user_id = ? AND entry_date = ? AND deleted_at IS NULL`,
		userID, date))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RecoveryEntry{}, fmt.Errorf("recovery entry for %s: %w", date, storage.ErrNotFound)
	}
	return e, err
}

func (s *Store) ListRecoveryEntries(userID string, includeDeleted bool) ([]models.RecoveryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM recovery_entries WHERE user_id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY entry_date DESC, created_at DESC"

	rows, err := s.query(query, userID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (s *Store) ListRecoveryEntriesBetween(userID string, start, end calendar.Date) ([]models.RecoveryEntry, error) {
	rows, err := s.query(
		`SELECT `+entryColumns+` FROM recovery_entries
		WHERE user_id = ? AND entry_date >= ? AND entry_date <= ? AND deleted_at IS NULL
		ORDER BY entry_date`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (s *Store) DeleteRecoveryEntry(userID string, date calendar.Date) error {
	ts := formatTime(now())
	result, err := s.exec(`
		UPDATE recovery_entries SET deleted_at = ?, updated_at = ?
		WHERE user_id = ? AND entry_date = ? AND deleted_at IS NULL`,
		ts, ts, userID, date)
	if err != nil {
		return fmt.Errorf("failed to delete recovery entry: %w", err)
	}
	return expectAffected(result, fmt.Errorf("recovery entry for %s: %w", date, storage.ErrNotFound))
}

// RestoreRecoveryEntry brings back the most recently deleted entry for the
// day. It fails with storage.ErrConflict if the day already has a live entry.
func (s *Store) RestoreRecoveryEntry(userID string, date calendar.Date) error {
	return s.withTx(func(tx *sql.Tx) error {
		var live int
		if err := s.txQueryRow(tx, `
			SELECT COUNT(*) FROM recovery_entries
			WHERE user_id = ? AND entry_date = ? AND deleted_at IS NULL`,
			userID, date).Scan(&live); err != nil {
			return err
		}
		if live > 0 {
			return fmt.Errorf("recovery entry for %s: %w", date, storage.ErrConflict)
		}

		var id string
		err := s.txQueryRow(tx, `
			SELECT id FROM recovery_entries
			WHERE user_id = ? AND entry_date = ? AND deleted_at IS NOT NULL
			ORDER BY deleted_at DESC LIMIT 1`,
			userID, date).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("deleted recovery entry for %s: %w", date, storage.ErrNotFound)
		}
		if err != nil {
			return err
		}

		_, err = s.txExec(tx, `
			UPDATE recovery_entries SET deleted_at = NULL, updated_at = ? WHERE id = ?`,
			formatTime(now()), id)
		return err
	})
}
