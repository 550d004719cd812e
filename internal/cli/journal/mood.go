package journal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/validation"
)

type MoodAddCmd struct {
	Level    int    `arg:"" help:"Mood level (1-10)."`
	Emotions string `short:"e" help:"Comma-separated emotions."`
	Triggers string `short:"t" help:"Comma-separated triggers."`
	Thoughts string `help:"Additional thoughts."`
	Date     string `help:"Day of the entry (YYYY-MM-DD). Defaults to today."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	m := models.MoodEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		MoodLevel: c.Level,
		Emotions:  cli.SplitList(c.Emotions),
		Triggers:  cli.SplitList(c.Triggers),
		Thoughts:  c.Thoughts,
		EntryDate: date,
	}
	result := validation.New().ValidateMood(m)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid mood entry: %w", err)
	}
	if err := ctx.Store.AddMoodEntry(m); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Logged mood %d/10 for %s\n", m.MoodLevel, m.EntryDate)
	return nil
}

type MoodListCmd struct {
	Limit int `short:"l" help:"Number of recent entries to show (0 for all)." default:"30"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	moods, err := ctx.Store.ListMoodEntries(userID, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list mood entries: %w", err)
	}
	if len(moods) == 0 {
		fmt.Println("No mood entries yet. Log one with 'mindtrack mood add'.")
		return nil
	}

	for _, m := range moods {
		fmt.Printf("%s  %2d/10  %s\n", m.EntryDate, m.MoodLevel, strings.Join(m.Emotions, ", "))
		if len(m.Triggers) > 0 {
			fmt.Printf("              triggers: %s\n", strings.Join(m.Triggers, ", "))
		}
		if m.Thoughts != "" {
			fmt.Printf("              %s\n", cli.Truncate(m.Thoughts, 70))
		}
	}
	fmt.Printf("\nAverage mood: %.1f/10 over %d entries\n", models.AverageMood(moods), len(moods))
	return nil
}
