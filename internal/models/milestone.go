package models

import (
	"encoding/json"
	"time"

	"github.com/julianstephens/mindtrack/internal/calendar"
)

type MilestoneType string

const (
	MilestoneStreak         MilestoneType = "streak"
	MilestoneGoalCompletion MilestoneType = "goal_completion"
	MilestoneImprovement    MilestoneType = "improvement"
	MilestoneCustom         MilestoneType = "custom"
)

func (t MilestoneType) Valid() bool {
	switch t {
	case MilestoneStreak, MilestoneGoalCompletion, MilestoneImprovement, MilestoneCustom:
		return true
	}
	return false
}

// RecoveryMilestone is an append-only achievement record.
// Metadata is an opaque JSON payload supplied by whoever records the milestone.
type RecoveryMilestone struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	MilestoneType MilestoneType   `json:"milestone_type"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	AchievedDate  calendar.Date   `json:"achieved_date"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
