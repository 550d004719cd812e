package journal

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/validation"
)

type JournalAddCmd struct {
	Title   string `arg:"" help:"Entry title."`
	Content string `arg:"" help:"Entry text."`
	Mood    string `short:"m" help:"Mood (happy|good|okay|low|sad)." default:"okay"`
	Date    string `help:"Day of the entry (YYYY-MM-DD). Defaults to today."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	j := models.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     c.Title,
		Content:   c.Content,
		Mood:      models.JournalMood(c.Mood),
		EntryDate: date,
	}
	result := validation.New().ValidateJournal(j)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid journal entry: %w", err)
	}
	if err := ctx.Store.AddJournalEntry(j); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Added journal entry: %s (ID: %s)\n", j.Title, j.ID)
	return nil
}

type JournalListCmd struct {
	Full bool `help:"Print the full text of each entry."`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListJournalEntries(userID)
	if err != nil {
		return fmt.Errorf("failed to list journal entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, j := range entries {
		fmt.Printf("%s  [%s] %s (ID: %s)\n", j.EntryDate, j.Mood, j.Title, j.ID)
		if c.Full {
			fmt.Printf("    %s\n\n", j.Content)
		} else {
			fmt.Printf("    %s\n", cli.Truncate(j.Content, 70))
		}
	}
	return nil
}

type JournalEditCmd struct {
	ID      string  `arg:"" help:"Journal entry ID."`
	Title   *string `help:"New title."`
	Content *string `help:"New text."`
	Mood    *string `short:"m" help:"New mood (happy|good|okay|low|sad)."`
	Date    *string `help:"New day (YYYY-MM-DD)."`
}

func (c *JournalEditCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	j, err := ctx.Store.GetJournalEntry(userID, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry with ID %s: %w", c.ID, err)
	}

	if c.Title != nil {
		j.Title = *c.Title
	}
	if c.Content != nil {
		j.Content = *c.Content
	}
	if c.Mood != nil {
		j.Mood = models.JournalMood(*c.Mood)
	}
	if c.Date != nil {
		if j.EntryDate, err = ctx.ParseDate(*c.Date); err != nil {
			return err
		}
	}
	j.UpdatedAt = ctx.Now().UTC()

	result := validation.New().ValidateJournal(j)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid journal entry: %w", err)
	}
	if err := ctx.Store.UpdateJournalEntry(j); err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Updated journal entry: %s\n", j.Title)
	return nil
}

type JournalDeleteCmd struct {
	ID string `arg:"" help:"Journal entry ID to delete."`
}

func (c *JournalDeleteCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteJournalEntry(userID, c.ID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Deleted journal entry with ID: %s\n", c.ID)
	return nil
}
