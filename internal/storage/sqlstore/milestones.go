package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/models"
)

const milestoneColumns = `id, user_id, milestone_type, title, description, achieved_date, metadata, created_at`

func (s *Store) AddMilestone(m models.RecoveryMilestone) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}
	var metadata sql.NullString
	if len(m.Metadata) > 0 {
		metadata = sql.NullString{String: string(m.Metadata), Valid: true}
	}

	_, err := s.exec(`
		INSERT INTO recovery_milestones (`+milestoneColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, string(m.MilestoneType), m.Title, m.Description, m.AchievedDate,
		metadata, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}
	return nil
}

// ListMilestones returns the user's milestones, most recently achieved first.
func (s *Store) ListMilestones(userID string) ([]models.RecoveryMilestone, error) {
	rows, err := s.query(`
		SELECT `+milestoneColumns+` FROM recovery_milestones
		WHERE user_id = ? ORDER BY achieved_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.RecoveryMilestone
	for rows.Next() {
		var m models.RecoveryMilestone
		var milestoneType, createdAt string
		var metadata sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &milestoneType, &m.Title, &m.Description,
			&m.AchievedDate, &metadata, &createdAt); err != nil {
			return nil, err
		}
		m.MilestoneType = models.MilestoneType(milestoneType)
		if metadata.Valid {
			m.Metadata = json.RawMessage(metadata.String)
		}
		if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}
