package entries

import (
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/recovery"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/validation"
)

type EntryListCmd struct {
	Deleted bool `help:"Include deleted entries."`
	Limit   int  `short:"l" help:"Maximum number of entries to show (0 for all)." default:"14"`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListRecoveryEntries(userID, c.Deleted)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No check-ins yet. Run 'mindtrack checkin' to record one.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	for _, e := range entries {
		suffix := ""
		if e.DeletedAt != nil {
			suffix = " (deleted)"
		}
		fmt.Printf("%s  %3d%%  %-6s  mood %-5s energy %-5s sleep %-5s  %d/4 activities%s\n",
			e.EntryDate, recovery.DailyPercentage(e), e.RecoveryStatus,
			cli.ScoreText(e.MoodScore), cli.ScoreText(e.EnergyLevel), cli.ScoreText(e.SleepQuality),
			e.CompletedActivities(), suffix)
	}
	return nil
}

type EntryShowCmd struct {
	Date string `arg:"" help:"Day of the entry (YYYY-MM-DD)."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Store.GetRecoveryEntry(userID, date)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}

	scores := recovery.ScoresWithDefaults(e)
	fmt.Printf("Check-in for %s\n", e.EntryDate)
	fmt.Printf("  Status:     %s\n", e.RecoveryStatus)
	fmt.Printf("  Mood:       %s\n", cli.ScoreText(e.MoodScore))
	fmt.Printf("  Energy:     %s\n", cli.ScoreText(e.EnergyLevel))
	fmt.Printf("  Sleep:      %s\n", cli.ScoreText(e.SleepQuality))
	fmt.Printf("  Medication: %s\n", check(e.MedicationAdherence))
	fmt.Printf("  Therapy:    %s\n", check(e.TherapySession))
	fmt.Printf("  Exercise:   %s\n", check(e.ExerciseCompleted))
	fmt.Printf("  Social:     %s\n", check(e.SocialConnection))
	if e.Notes != "" {
		fmt.Printf("  Notes:      %s\n", e.Notes)
	}
	fmt.Printf("\n  Base score %d + activity bonus %d = %d%%\n",
		scores.BaseScore(), recovery.ActivityBonus(e), recovery.DailyPercentage(e))
	return nil
}

func check(done bool) string {
	if done {
		return "✓"
	}
	return "-"
}

// EntryUpdateCmd changes only the fields whose flags are given.
type EntryUpdateCmd struct {
	Date       string  `arg:"" help:"Day of the entry (YYYY-MM-DD)."`
	Status     *string `short:"s" help:"New status (better|same|worse)."`
	Mood       *int    `short:"m" help:"New mood score (1-10)."`
	Energy     *int    `short:"e" help:"New energy level (1-10)."`
	Sleep      *int    `help:"New sleep quality (1-10)."`
	Medication *bool   `help:"Took medication as prescribed."`
	Therapy    *bool   `help:"Attended a therapy session."`
	Exercise   *bool   `help:"Completed exercise."`
	Social     *bool   `help:"Had a social connection."`
	Notes      *string `short:"n" help:"Replace the notes."`
}

func (c *EntryUpdateCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Store.GetRecoveryEntry(userID, date)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}

	if c.Status != nil {
		e.RecoveryStatus = models.RecoveryStatus(*c.Status)
	}
	if c.Mood != nil {
		e.MoodScore = c.Mood
	}
	if c.Energy != nil {
		e.EnergyLevel = c.Energy
	}
	if c.Sleep != nil {
		e.SleepQuality = c.Sleep
	}
	if c.Medication != nil {
		e.MedicationAdherence = *c.Medication
	}
	if c.Therapy != nil {
		e.TherapySession = *c.Therapy
	}
	if c.Exercise != nil {
		e.ExerciseCompleted = *c.Exercise
	}
	if c.Social != nil {
		e.SocialConnection = *c.Social
	}
	if c.Notes != nil {
		e.Notes = *c.Notes
	}

	result := validation.New().ValidateEntry(e, today)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	saved, err := ctx.Store.UpsertRecoveryEntry(e)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Updated check-in for %s: %d%% wellness\n", saved.EntryDate, recovery.DailyPercentage(saved))
	return nil
}

type EntryDeleteCmd struct {
	Date string `arg:"" help:"Day of the entry to delete (YYYY-MM-DD)."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	userID, date, err := userAndDate(ctx, c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteRecoveryEntry(userID, date); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Deleted check-in for %s (restore with 'mindtrack entry restore %s')\n", date, date)
	return nil
}

type EntryRestoreCmd struct {
	Date string `arg:"" help:"Day of the entry to restore (YYYY-MM-DD)."`
}

func (c *EntryRestoreCmd) Run(ctx *cli.Context) error {
	userID, date, err := userAndDate(ctx, c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestoreRecoveryEntry(userID, date); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return fmt.Errorf("%s already has a check-in; delete it first to restore the old one", date)
		}
		return fmt.Errorf("failed to restore entry: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Restored check-in for %s\n", date)
	return nil
}

func userAndDate(ctx *cli.Context, value string) (string, calendar.Date, error) {
	userID, err := ctx.UserID()
	if err != nil {
		return "", calendar.Date{}, err
	}
	date, err := ctx.ParseDate(value)
	return userID, date, err
}
