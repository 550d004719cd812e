package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

const profileColumns = `id, full_name, email, phone, location, bio, date_of_birth,
	profile_picture_url, created_at, updated_at`

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Location, &p.Bio,
		&p.DateOfBirth, &p.ProfilePictureURL, &createdAt, &updatedAt)
	if err != nil {
		return models.Profile{}, err
	}

	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Profile{}, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Store) GetProfile(userID string) (models.Profile, error) {
	p, err := scanProfile(s.queryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}
	return p, err
}

// SaveProfile inserts the profile or overwrites every editable field of an
// existing one. created_at is never changed once set.
func (s *Store) SaveProfile(p models.Profile) error {
	ts := now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = ts
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = ts
	}

	_, err := s.exec(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			location = excluded.location,
			bio = excluded.bio,
			date_of_birth = excluded.date_of_birth,
			profile_picture_url = excluded.profile_picture_url,
			updated_at = excluded.updated_at`,
		p.ID, p.FullName, p.Email, p.Phone, p.Location, p.Bio, p.DateOfBirth,
		p.ProfilePictureURL, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Store) ListProfiles() ([]models.Profile, error) {
	rows, err := s.query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
