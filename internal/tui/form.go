package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/validation"
)

// CheckInFormModel holds the check-in form's bound values. Scores are kept
// as text so they can be left blank.
type CheckInFormModel struct {
	Status     models.RecoveryStatus
	Mood       string
	Energy     string
	Sleep      string
	Medication bool
	Therapy    bool
	Exercise   bool
	Social     bool
	Notes      string
}

// checkInFormFor pre-fills the form from an existing entry.
func checkInFormFor(e *models.RecoveryEntry) *CheckInFormModel {
	fm := &CheckInFormModel{Status: models.StatusSame}
	if e == nil {
		return fm
	}
	fm.Status = e.RecoveryStatus
	fm.Mood = scoreString(e.MoodScore)
	fm.Energy = scoreString(e.EnergyLevel)
	fm.Sleep = scoreString(e.SleepQuality)
	fm.Medication = e.MedicationAdherence
	fm.Therapy = e.TherapySession
	fm.Exercise = e.ExerciseCompleted
	fm.Social = e.SocialConnection
	fm.Notes = e.Notes
	return fm
}

func scoreString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseScore(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return &v, nil
}

func validateScore(s string) error {
	v, err := parseScore(s)
	if err != nil {
		return err
	}
	if v != nil && (*v < 1 || *v > 10) {
		return fmt.Errorf("must be between 1 and 10")
	}
	return nil
}

// NewCheckInForm builds the form for today's check-in.
func NewCheckInForm(fm *CheckInFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.RecoveryStatus]().
				Title("Compared to yesterday").
				Options(
					huh.NewOption("Better", models.StatusBetter),
					huh.NewOption("About the same", models.StatusSame),
					huh.NewOption("Worse", models.StatusWorse),
				).
				Value(&fm.Status),
			huh.NewInput().
				Title("Mood (1-10, optional)").
				Value(&fm.Mood).
				Validate(validateScore),
			huh.NewInput().
				Title("Energy (1-10, optional)").
				Value(&fm.Energy).
				Validate(validateScore),
			huh.NewInput().
				Title("Sleep quality (1-10, optional)").
				Value(&fm.Sleep).
				Validate(validateScore),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Took medication as prescribed?").Value(&fm.Medication),
			huh.NewConfirm().Title("Had a therapy session?").Value(&fm.Therapy),
			huh.NewConfirm().Title("Exercised?").Value(&fm.Exercise),
			huh.NewConfirm().Title("Connected with someone?").Value(&fm.Social),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	)
}

// openCheckIn starts the form, pre-filled from today's entry when one exists.
func (m *Model) openCheckIn() error {
	if changed, err := m.syncToday(); err != nil {
		return err
	} else if changed {
		m.refresh()
	}
	var existing *models.RecoveryEntry
	e, err := m.store.GetRecoveryEntry(m.userID, m.today)
	switch {
	case err == nil:
		existing = &e
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}
	m.checkIn = checkInFormFor(existing)
	m.checkInDate = m.today
	m.form = NewCheckInForm(m.checkIn)
	return nil
}

// saveCheckIn writes the form's values as the entry for the day the form
// was opened on.
func (m *Model) saveCheckIn() (models.RecoveryEntry, error) {
	fm := m.checkIn
	entry := models.RecoveryEntry{
		UserID:              m.userID,
		EntryDate:           m.checkInDate,
		RecoveryStatus:      fm.Status,
		MedicationAdherence: fm.Medication,
		TherapySession:      fm.Therapy,
		ExerciseCompleted:   fm.Exercise,
		SocialConnection:    fm.Social,
		Notes:               strings.TrimSpace(fm.Notes),
	}
	var err error
	if entry.MoodScore, err = parseScore(fm.Mood); err != nil {
		return entry, fmt.Errorf("mood: %w", err)
	}
	if entry.EnergyLevel, err = parseScore(fm.Energy); err != nil {
		return entry, fmt.Errorf("energy: %w", err)
	}
	if entry.SleepQuality, err = parseScore(fm.Sleep); err != nil {
		return entry, fmt.Errorf("sleep: %w", err)
	}
	if _, err := m.syncToday(); err != nil {
		return entry, err
	}
	if err := validation.New().ValidateEntry(entry, m.today).Err(); err != nil {
		return entry, err
	}
	saved, err := m.store.UpsertRecoveryEntry(entry)
	if err != nil {
		return saved, err
	}
	m.afterWrite()
	return saved, nil
}
