package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
)

// ProblemType represents the kind of validation problem
type ProblemType string

const (
	ProblemOutOfRange    ProblemType = "out_of_range"
	ProblemInvalidValue  ProblemType = "invalid_value"
	ProblemMissingField  ProblemType = "missing_field"
	ProblemFutureDate    ProblemType = "future_date"
	ProblemDateOrder     ProblemType = "date_order"
	ProblemDuplicateDay  ProblemType = "duplicate_day"
	ProblemOverdueGoal   ProblemType = "overdue_goal"
	ProblemInvalidFormat ProblemType = "invalid_format"
)

// Problem is a single issue found in a record
type Problem struct {
	Type        ProblemType
	Field       string
	Description string
	RecordID    string
}

// ValidationResult contains all detected problems
type ValidationResult struct {
	Problems []Problem
}

// HasProblems returns true if there are any problems
func (vr *ValidationResult) HasProblems() bool {
	return len(vr.Problems) > 0
}

func (vr *ValidationResult) add(p Problem) {
	vr.Problems = append(vr.Problems, p)
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Problems = append(vr.Problems, other.Problems...)
}

// FormatReport returns a human-readable report of all problems
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasProblems() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, p := range vr.Problems {
		fmt.Fprintf(&b, "- %s\n", p.Description)
	}
	return b.String()
}

// Err returns nil when there are no problems, or one error listing them all.
func (vr *ValidationResult) Err() error {
	if !vr.HasProblems() {
		return nil
	}
	msgs := make([]string, 0, len(vr.Problems))
	for _, p := range vr.Problems {
		msgs = append(msgs, p.Description)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Validator checks records before they are stored and audits stored data
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

func checkScore(result *ValidationResult, field string, v *int) {
	if v == nil {
		return
	}
	if *v < constants.MinScore || *v > constants.MaxScore {
		result.add(Problem{
			Type:        ProblemOutOfRange,
			Field:       field,
			Description: fmt.Sprintf("%s must be between %d and %d, got %d", field, constants.MinScore, constants.MaxScore, *v),
		})
	}
}

// ValidateEntry checks a recovery check-in before it is saved. Scores are
// optional but must lie within 1-10 when given; the day must not be in the
// future relative to today.
func (v *Validator) ValidateEntry(e models.RecoveryEntry, today calendar.Date) ValidationResult {
	var result ValidationResult

	if e.EntryDate.IsZero() {
		result.add(Problem{Type: ProblemMissingField, Field: "entry_date", Description: "entry date is required"})
	} else if e.EntryDate.After(today) {
		result.add(Problem{
			Type:        ProblemFutureDate,
			Field:       "entry_date",
			Description: fmt.Sprintf("entry date %s is after today (%s)", e.EntryDate, today),
		})
	}

	if !e.RecoveryStatus.Valid() {
		result.add(Problem{
			Type:        ProblemInvalidValue,
			Field:       "recovery_status",
			Description: fmt.Sprintf("recovery status must be better, same or worse, got %q", e.RecoveryStatus),
		})
	}

	checkScore(&result, "mood_score", e.MoodScore)
	checkScore(&result, "energy_level", e.EnergyLevel)
	checkScore(&result, "sleep_quality", e.SleepQuality)

	for i := range result.Problems {
		result.Problems[i].RecordID = e.ID
	}
	return result
}

// ValidateGoal checks a goal's type, target and date span.
func (v *Validator) ValidateGoal(g models.RecoveryGoal) ValidationResult {
	var result ValidationResult

	if strings.TrimSpace(g.Title) == "" {
		result.add(Problem{Type: ProblemMissingField, Field: "title", Description: "goal title is required"})
	}
	if !g.GoalType.Valid() {
		result.add(Problem{
			Type:        ProblemInvalidValue,
			Field:       "goal_type",
			Description: fmt.Sprintf("goal type must be weekly, monthly or custom, got %q", g.GoalType),
		})
	}
	if g.TargetValue <= 0 {
		result.add(Problem{
			Type:        ProblemOutOfRange,
			Field:       "target_value",
			Description: fmt.Sprintf("goal target must be positive, got %g", g.TargetValue),
		})
	}
	if g.CurrentValue < 0 {
		result.add(Problem{
			Type:        ProblemOutOfRange,
			Field:       "current_value",
			Description: fmt.Sprintf("goal progress cannot be negative, got %g", g.CurrentValue),
		})
	}
	if g.StartDate.IsZero() || g.EndDate.IsZero() {
		result.add(Problem{Type: ProblemMissingField, Field: "dates", Description: "goal start and end dates are required"})
	} else if g.EndDate.Before(g.StartDate) {
		result.add(Problem{
			Type:        ProblemDateOrder,
			Field:       "end_date",
			Description: fmt.Sprintf("goal ends (%s) before it starts (%s)", g.EndDate, g.StartDate),
		})
	}

	for i := range result.Problems {
		result.Problems[i].RecordID = g.ID
	}
	return result
}

// ValidateMood checks a quick mood log.
func (v *Validator) ValidateMood(m models.MoodEntry) ValidationResult {
	var result ValidationResult
	level := m.MoodLevel
	checkScore(&result, "mood_level", &level)
	for _, e := range m.Emotions {
		if strings.TrimSpace(e) == "" {
			result.add(Problem{Type: ProblemInvalidValue, Field: "emotions", Description: "emotions must not be blank"})
			break
		}
	}
	return result
}

// ValidateJournal checks a journal entry.
func (v *Validator) ValidateJournal(j models.JournalEntry) ValidationResult {
	var result ValidationResult
	if strings.TrimSpace(j.Title) == "" {
		result.add(Problem{Type: ProblemMissingField, Field: "title", Description: "journal title is required"})
	}
	if strings.TrimSpace(j.Content) == "" {
		result.add(Problem{Type: ProblemMissingField, Field: "content", Description: "journal content is required"})
	}
	if !j.Mood.Valid() {
		result.add(Problem{
			Type:        ProblemInvalidValue,
			Field:       "mood",
			Description: fmt.Sprintf("journal mood must be one of happy, good, okay, low, sad; got %q", j.Mood),
		})
	}
	return result
}

// ValidateReminderTime checks an HH:MM reminder setting.
func (v *Validator) ValidateReminderTime(s string) ValidationResult {
	var result ValidationResult
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 || len(s) != len(constants.TimeFormat) ||
		h < 0 || h > 23 || m < 0 || m > 59 {
		result.add(Problem{
			Type:        ProblemInvalidFormat,
			Field:       "reminder_time",
			Description: fmt.Sprintf("reminder time must be HH:MM, got %q", s),
		})
	}
	return result
}

// AuditEntries checks stored entries: each must be valid on its own and no
// day may hold more than one live entry.
func (v *Validator) AuditEntries(entries []models.RecoveryEntry, today calendar.Date) ValidationResult {
	var result ValidationResult

	perDay := make(map[calendar.Date][]string)
	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		perDay[e.EntryDate] = append(perDay[e.EntryDate], e.ID)
		result.merge(v.ValidateEntry(e, today))
	}

	days := make([]calendar.Date, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for _, day := range days {
		if ids := perDay[day]; len(ids) > 1 {
			result.add(Problem{
				Type:        ProblemDuplicateDay,
				Field:       "entry_date",
				Description: fmt.Sprintf("%d live entries recorded for %s (IDs: %v)", len(ids), day, ids),
				RecordID:    ids[0],
			})
		}
	}
	return result
}

// AuditGoals checks stored goals and flags open goals past their end date.
func (v *Validator) AuditGoals(goals []models.RecoveryGoal, today calendar.Date) ValidationResult {
	var result ValidationResult
	for _, g := range goals {
		result.merge(v.ValidateGoal(g))
		if g.Overdue(today) {
			result.add(Problem{
				Type:        ProblemOverdueGoal,
				Field:       "end_date",
				Description: fmt.Sprintf("goal %q ended on %s without being completed", g.Title, g.EndDate),
				RecordID:    g.ID,
			})
		}
	}
	return result
}
