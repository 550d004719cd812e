package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

const goalColumns = `id, user_id, goal_type, title, description, target_value, current_value,
	unit, start_date, end_date, is_completed, created_at, updated_at`

func scanGoal(row rowScanner) (models.RecoveryGoal, error) {
	var g models.RecoveryGoal
	var goalType, createdAt, updatedAt string

	err := row.Scan(&g.ID, &g.UserID, &goalType, &g.Title, &g.Description, &g.TargetValue,
		&g.CurrentValue, &g.Unit, &g.StartDate, &g.EndDate, &g.IsCompleted, &createdAt, &updatedAt)
	if err != nil {
		return models.RecoveryGoal{}, err
	}

	g.GoalType = models.GoalType(goalType)
	if g.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.RecoveryGoal{}, err
	}
	if g.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.RecoveryGoal{}, err
	}
	return g, nil
}

func (s *Store) AddGoal(g models.RecoveryGoal) error {
	ts := now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = ts
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = ts
	}

	_, err := s.exec(`
		INSERT INTO recovery_goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, string(g.GoalType), g.Title, g.Description, g.TargetValue, g.CurrentValue,
		g.Unit, g.StartDate, g.EndDate, g.IsCompleted, formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(userID, id string) (models.RecoveryGoal, error) {
	g, err := scanGoal(s.queryRow(
		`SELECT `+goalColumns+` FROM recovery_goals WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RecoveryGoal{}, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}
	return g, err
}

func (s *Store) ListGoals(userID string) ([]models.RecoveryGoal, error) {
	rows, err := s.query(
		`SELECT `+goalColumns+` FROM recovery_goals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.RecoveryGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(g models.RecoveryGoal) error {
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now()
	}
	result, err := s.exec(`
		UPDATE recovery_goals SET
			goal_type = ?, title = ?, description = ?, target_value = ?, current_value = ?,
			unit = ?, start_date = ?, end_date = ?, is_completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		string(g.GoalType), g.Title, g.Description, g.TargetValue, g.CurrentValue,
		g.Unit, g.StartDate, g.EndDate, g.IsCompleted, formatTime(g.UpdatedAt), g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return expectAffected(result, fmt.Errorf("goal %s: %w", g.ID, storage.ErrNotFound))
}

func (s *Store) DeleteGoal(userID, id string) error {
	result, err := s.exec(`DELETE FROM recovery_goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return expectAffected(result, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound))
}
