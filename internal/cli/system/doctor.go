package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mindtrack/internal/backup"
	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/keyring"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/storage/sqlite"
	"github.com/julianstephens/mindtrack/internal/utils"
	"github.com/julianstephens/mindtrack/internal/validation"
)

// errSkipped marks a check that does not apply to the current setup.
var errSkipped = errors.New("skipped")

type doctorCheck struct {
	name string
	// warnOnly checks report problems without failing the run.
	warnOnly bool
	needsDB  bool
	run      func(ctx *cli.Context) error
}

var doctorChecks = []doctorCheck{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Goal deadlines", needsDB: true, warnOnly: true, run: checkOverdueGoals},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Assistant API key", warnOnly: true, run: checkAPIKey},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	for i, check := range doctorChecks {
		if check.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", check.name)
			continue
		}

		err := check.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", check.name)
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", check.name, err)
		case check.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", check.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", check.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaVersion(ctx *cli.Context) (int, int, error) {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: backend is not versioned", errSkipped)
	}
	return migrator.SchemaVersion()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersion(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersion(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run 'mindtrack migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("%w: backups are only kept for SQLite databases", errSkipped)
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'mindtrack backup create'")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	result := validation.New().ValidateReminderTime(settings.ReminderTime)
	if err := result.Err(); err != nil {
		return err
	}
	if settings.CurrentUserID == "" {
		return fmt.Errorf("no current profile; run 'mindtrack init'")
	}
	if _, err := ctx.Store.GetProfile(settings.CurrentUserID); err != nil {
		return fmt.Errorf("current profile %s: %w", settings.CurrentUserID, err)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	profiles, err := ctx.Store.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to get profiles: %w", err)
	}

	v := validation.New()
	var result validation.ValidationResult
	for _, p := range profiles {
		entries, err := ctx.Store.ListRecoveryEntries(p.ID, false)
		if err != nil {
			return fmt.Errorf("failed to get check-ins: %w", err)
		}
		goals, err := ctx.Store.ListGoals(p.ID)
		if err != nil {
			return fmt.Errorf("failed to get goals: %w", err)
		}
		entryResult := v.AuditEntries(entries, today)
		goalResult := v.AuditGoals(goals, today)
		result.Problems = append(result.Problems, entryResult.Problems...)
		for _, problem := range goalResult.Problems {
			if problem.Type != validation.ProblemOverdueGoal {
				result.Problems = append(result.Problems, problem)
			}
		}
	}
	return result.Err()
}

func checkOverdueGoals(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return fmt.Errorf("%w: no current profile", errSkipped)
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	goals, err := ctx.Store.ListGoals(userID)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}
	overdue := 0
	for _, g := range goals {
		if g.Overdue(today) {
			overdue++
		}
	}
	if overdue > 0 {
		return fmt.Errorf("%d goal(s) passed their end date without being completed", overdue)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkAPIKey(_ *cli.Context) error {
	_, err := keyring.ResolveGeminiAPIKey()
	return err
}
