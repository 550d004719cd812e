package models

import (
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
)

// GoalType is the cadence a recovery goal is measured over.
type GoalType string

const (
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
	GoalCustom  GoalType = "custom"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalWeekly, GoalMonthly, GoalCustom:
		return true
	}
	return false
}

// RecoveryGoal is a user-defined target with a numeric progress counter.
type RecoveryGoal struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	GoalType     GoalType      `json:"goal_type"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	TargetValue  float64       `json:"target_value"`
	CurrentValue float64       `json:"current_value"`
	Unit         string        `json:"unit,omitempty"`
	StartDate    calendar.Date `json:"start_date"`
	EndDate      calendar.Date `json:"end_date"`
	IsCompleted  bool          `json:"is_completed"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Percent returns progress toward the target, capped at 100.
func (g RecoveryGoal) Percent() int {
	if g.TargetValue <= 0 {
		return 0
	}
	p := int(g.CurrentValue / g.TargetValue * 100)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// AddProgress adds delta to the current value, never going below zero, and
// marks the goal completed once the target is reached. Completed goals stay
// completed.
func (g *RecoveryGoal) AddProgress(delta float64, now time.Time) {
	g.CurrentValue += delta
	if g.CurrentValue < 0 {
		g.CurrentValue = 0
	}
	if g.CurrentValue >= g.TargetValue {
		g.IsCompleted = true
	}
	g.UpdatedAt = now
}

// Overdue reports whether the goal is still open after its end date.
func (g RecoveryGoal) Overdue(today calendar.Date) bool {
	return !g.IsCompleted && today.After(g.EndDate)
}
