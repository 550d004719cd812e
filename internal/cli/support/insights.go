package support

import (
	"context"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/constants"
)

type InsightsCmd struct {
	Entries int `short:"n" help:"Number of recent check-ins and mood logs to analyse." default:"14"`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	if c.Entries <= 0 {
		c.Entries = constants.DefaultInsightsEntries
	}

	entries, err := ctx.Store.ListRecoveryEntries(userID, false)
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}
	if len(entries) > c.Entries {
		entries = entries[:c.Entries]
	}
	moods, err := ctx.Store.ListMoodEntries(userID, c.Entries)
	if err != nil {
		return fmt.Errorf("failed to load mood entries: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.AssistantTimeout)
	defer cancel()

	a, err := ctx.Assistant(reqCtx)
	if err != nil {
		return fmt.Errorf("assistant unavailable: %w", err)
	}
	text, err := a.MoodInsights(reqCtx, entries, moods)
	if err != nil {
		return fmt.Errorf("failed to generate insights: %w", err)
	}

	fmt.Printf("Insights from %d check-ins and %d mood logs\n\n", len(entries), len(moods))
	fmt.Println(text)
	return nil
}
