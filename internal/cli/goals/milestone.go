package goals

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
)

type MilestoneAddCmd struct {
	Title       string `arg:"" help:"Milestone title."`
	Type        string `short:"t" help:"Milestone type (streak|goal_completion|improvement|custom)." default:"custom"`
	Description string `short:"d" help:"Longer description."`
	Date        string `help:"Day it was achieved (YYYY-MM-DD). Defaults to today."`
	Metadata    string `help:"Extra details as a JSON object."`
}

func (c *MilestoneAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("milestone title is required")
	}
	kind := models.MilestoneType(c.Type)
	if !kind.Valid() {
		return fmt.Errorf("milestone type must be streak, goal_completion, improvement or custom, got %q", c.Type)
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	var metadata json.RawMessage
	if c.Metadata != "" {
		var obj map[string]any
		if err := json.Unmarshal([]byte(c.Metadata), &obj); err != nil {
			return fmt.Errorf("metadata must be a JSON object: %w", err)
		}
		metadata = json.RawMessage(c.Metadata)
	}

	m := models.RecoveryMilestone{
		ID:            uuid.New().String(),
		UserID:        userID,
		MilestoneType: kind,
		Title:         c.Title,
		Description:   c.Description,
		AchievedDate:  date,
		Metadata:      metadata,
	}
	if err := ctx.Store.AddMilestone(m); err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("🏆 Recorded milestone: %s (%s)\n", m.Title, m.AchievedDate)
	return nil
}

type MilestoneListCmd struct{}

func (c *MilestoneListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	milestones, err := ctx.Store.ListMilestones(userID)
	if err != nil {
		return fmt.Errorf("failed to list milestones: %w", err)
	}
	if len(milestones) == 0 {
		fmt.Println("No milestones yet.")
		return nil
	}
	for _, m := range milestones {
		fmt.Printf("%s  🏆 %s [%s]\n", m.AchievedDate, m.Title, m.MilestoneType)
		if m.Description != "" {
			fmt.Printf("            %s\n", m.Description)
		}
	}
	return nil
}
