package entries

import (
	"fmt"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/recovery"
	"github.com/julianstephens/mindtrack/internal/validation"
)

type CheckInCmd struct {
	Date       string `help:"Day to record (YYYY-MM-DD). Defaults to today."`
	Status     string `short:"s" help:"How today compares to yesterday (better|same|worse)." default:"same"`
	Mood       *int   `short:"m" help:"Mood score (1-10)."`
	Energy     *int   `short:"e" help:"Energy level (1-10)."`
	Sleep      *int   `help:"Sleep quality (1-10)."`
	Medication bool   `help:"Took medication as prescribed."`
	Therapy    bool   `help:"Attended a therapy session."`
	Exercise   bool   `help:"Completed exercise."`
	Social     bool   `help:"Had a social connection."`
	Notes      string `short:"n" help:"Free-form notes."`
}

func (c *CheckInCmd) Run(ctx *cli.Context) error {
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

	entry := models.RecoveryEntry{
		UserID:              userID,
		EntryDate:           date,
		RecoveryStatus:      models.RecoveryStatus(c.Status),
		MoodScore:           c.Mood,
		EnergyLevel:         c.Energy,
		SleepQuality:        c.Sleep,
		MedicationAdherence: c.Medication,
		TherapySession:      c.Therapy,
		ExerciseCompleted:   c.Exercise,
		SocialConnection:    c.Social,
		Notes:               c.Notes,
	}
	result := validation.New().ValidateEntry(entry, today)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid check-in: %w", err)
	}

	saved, err := ctx.Store.UpsertRecoveryEntry(entry)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Checked in for %s: %d%% wellness\n", saved.EntryDate, recovery.DailyPercentage(saved))
	return nil
}
