package goals

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/validation"
)

type GoalAddCmd struct {
	Title       string  `arg:"" help:"Goal title."`
	Type        string  `short:"t" help:"Goal cadence (weekly|monthly|custom)." default:"weekly"`
	Description string  `short:"d" help:"Longer description."`
	Target      float64 `help:"Target value." default:"1"`
	Unit        string  `short:"u" help:"Unit of the target (e.g. times, minutes)." default:"times"`
	Start       string  `help:"Start date (YYYY-MM-DD). Defaults to today."`
	End         string  `help:"End date (YYYY-MM-DD). Defaults to 7 days after the start."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	start, err := ctx.ParseDate(c.Start)
	if err != nil {
		return err
	}
	end := start.AddDays(constants.DefaultGoalSpanDays)
	if c.End != "" {
		if end, err = ctx.ParseDate(c.End); err != nil {
			return err
		}
	}

	goal := models.RecoveryGoal{
		ID:          uuid.New().String(),
		UserID:      userID,
		GoalType:    models.GoalType(c.Type),
		Title:       c.Title,
		Description: c.Description,
		TargetValue: c.Target,
		Unit:        c.Unit,
		StartDate:   start,
		EndDate:     end,
	}
	result := validation.New().ValidateGoal(goal)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}

	if err := ctx.Store.AddGoal(goal); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Added goal: %s (ID: %s)\n", goal.Title, goal.ID)
	fmt.Printf("  %s, %s to %s, target %g %s\n", goal.GoalType, goal.StartDate, goal.EndDate, goal.TargetValue, goal.Unit)
	return nil
}

type GoalListCmd struct {
	Active bool `help:"Show only goals that are not completed."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	goals, err := ctx.Store.ListGoals(userID)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	// Active goals first; the store's newest-first order holds within each group.
	sort.SliceStable(goals, func(i, j int) bool {
		return !goals[i].IsCompleted && goals[j].IsCompleted
	})

	shown := 0
	for _, g := range goals {
		if c.Active && g.IsCompleted {
			continue
		}
		status := ""
		switch {
		case g.IsCompleted:
			status = " ✓ completed"
		case g.Overdue(today):
			status = " (overdue)"
		}
		fmt.Printf("%s  %s%s\n", g.ID, cli.GoalLine(g), status)
		fmt.Printf("    %s, %s to %s\n", g.GoalType, g.StartDate, g.EndDate)
		shown++
	}
	if shown == 0 {
		fmt.Println("No goals yet. Add one with 'mindtrack goal add'.")
	}
	return nil
}

type GoalProgressCmd struct {
	ID    string  `arg:"" help:"Goal ID."`
	Delta float64 `arg:"" help:"Amount to add (negative to correct)."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	goal, err := ctx.Store.GetGoal(userID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find goal with ID %s: %w", c.ID, err)
	}

	wasCompleted := goal.IsCompleted
	goal.AddProgress(c.Delta, ctx.Now().UTC())
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Println(cli.GoalLine(goal))
	if goal.IsCompleted && !wasCompleted {
		fmt.Println("🎉 Goal completed!")
	}
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID to delete."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	goal, err := ctx.Store.GetGoal(userID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find goal with ID %s: %w", c.ID, err)
	}
	if err := ctx.Store.DeleteGoal(userID, c.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Deleted goal: %s (ID: %s)\n", goal.Title, c.ID)
	return nil
}
