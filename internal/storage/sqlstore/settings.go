package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(s.dialect.Rebind(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for key, value := range models.SettingsToMap(settings) {
			if _, err := stmt.Exec(key, value); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}

// EnsureDefaultSettings writes the default settings when none are stored or
// the stored set is incomplete. The current user survives a reset.
func (s *Store) EnsureDefaultSettings() error {
	settings, err := s.GetSettings()
	if err == nil && settings.Timezone != "" {
		return nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Existing settings unreadable, resetting to defaults", "error", err)
	}

	defaults := models.DefaultSettings()
	if err == nil {
		defaults.CurrentUserID = settings.CurrentUserID
	}
	if err := s.SaveSettings(defaults); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}
