package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/cli/backups"
	"github.com/julianstephens/mindtrack/internal/cli/entries"
	"github.com/julianstephens/mindtrack/internal/cli/goals"
	"github.com/julianstephens/mindtrack/internal/cli/journal"
	"github.com/julianstephens/mindtrack/internal/cli/settings"
	"github.com/julianstephens/mindtrack/internal/cli/support"
	"github.com/julianstephens/mindtrack/internal/cli/system"
	"github.com/julianstephens/mindtrack/internal/constants"
	apperrors "github.com/julianstephens/mindtrack/internal/errors"
	"github.com/julianstephens/mindtrack/internal/keyring"
	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/storage/postgres"
	"github.com/julianstephens/mindtrack/internal/storage/sqlite"
	"github.com/julianstephens/mindtrack/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`
	User    string `help:"Act as this profile instead of the current one."`

	Init     system.InitCmd     `cmd:"" help:"Initialize mindtrack storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Audit stored check-ins and goals."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Remind   system.RemindCmd   `cmd:"" help:"Send the daily check-in reminder if one is due."`

	Checkin  entries.CheckInCmd  `cmd:"" help:"Record today's recovery check-in."`
	Progress entries.ProgressCmd `cmd:"" help:"Show weekly recovery progress."`
	Entry    struct {
		List    entries.EntryListCmd    `cmd:"" help:"List recent check-ins." default:"1"`
		Show    entries.EntryShowCmd    `cmd:"" help:"Show one day's check-in."`
		Update  entries.EntryUpdateCmd  `cmd:"" help:"Change fields of an existing check-in."`
		Delete  entries.EntryDeleteCmd  `cmd:"" help:"Delete a check-in."`
		Restore entries.EntryRestoreCmd `cmd:"" help:"Restore a deleted check-in."`
	} `cmd:"" help:"Manage check-ins."`

	Goal struct {
		Add      goals.GoalAddCmd      `cmd:"" help:"Add a recovery goal."`
		List     goals.GoalListCmd     `cmd:"" help:"List goals." default:"1"`
		Progress goals.GoalProgressCmd `cmd:"" help:"Record progress toward a goal."`
		Delete   goals.GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
	} `cmd:"" help:"Manage recovery goals."`
	Milestone struct {
		Add  goals.MilestoneAddCmd  `cmd:"" help:"Record a milestone."`
		List goals.MilestoneListCmd `cmd:"" help:"List milestones." default:"1"`
	} `cmd:"" help:"Manage milestones."`

	Mood struct {
		Add  journal.MoodAddCmd  `cmd:"" help:"Log a mood entry."`
		List journal.MoodListCmd `cmd:"" help:"List mood entries." default:"1"`
	} `cmd:"" help:"Track your mood."`
	Journal struct {
		Add    journal.JournalAddCmd    `cmd:"" help:"Write a journal entry."`
		List   journal.JournalListCmd   `cmd:"" help:"List journal entries." default:"1"`
		Edit   journal.JournalEditCmd   `cmd:"" help:"Edit a journal entry."`
		Delete journal.JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
	} `cmd:"" help:"Keep a journal."`

	Chat struct {
		New  support.ChatNewCmd  `cmd:"" help:"Start a conversation."`
		List support.ChatListCmd `cmd:"" help:"List conversations." default:"1"`
		Send support.ChatSendCmd `cmd:"" help:"Send a message to the assistant."`
		Show support.ChatShowCmd `cmd:"" help:"Show a conversation's messages."`
	} `cmd:"" help:"Talk with the AI support assistant."`
	Insights  support.InsightsCmd  `cmd:"" help:"Ask the assistant for insights on recent check-ins and moods."`
	Helplines support.HelplinesCmd `cmd:"" help:"List crisis helplines."`

	Profile struct {
		Show settings.ProfileShowCmd `cmd:"" help:"Show your profile and stats." default:"1"`
		Set  settings.ProfileSetCmd  `cmd:"" help:"Update profile fields."`
	} `cmd:"" help:"Manage your profile."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Keyring struct {
		Set          system.KeyringSetCmd          `cmd:"" help:"Store the PostgreSQL connection string."`
		Get          system.KeyringGetCmd          `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete       system.KeyringDeleteCmd       `cmd:"" help:"Remove the stored connection string."`
		SetAPIKey    system.KeyringSetAPIKeyCmd    `cmd:"" name:"set-api-key" help:"Store the Gemini API key."`
		DeleteAPIKey system.KeyringDeleteAPIKeyCmd `cmd:"" name:"delete-api-key" help:"Remove the stored Gemini API key."`
		Status       system.KeyringStatusCmd       `cmd:"" help:"Show keyring status." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Mental health recovery tracker: daily check-ins, goals, mood, journal and AI support"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	config, err := resolveConfig(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	var store storage.Provider
	configDir := filepath.Dir(config)
	if utils.IsPostgresURL(config) {
		store = postgres.New(config)
		if configDir, err = utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath)); err != nil {
			apperrors.Fatal(err)
		}
	} else {
		store = sqlite.NewStore(config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{
		Store: store,
		User:  CLI.User,
	}

	if ctx.Selected() != nil && ctx.Selected().Name != "init" && !isCredentialCommand(ctx) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// resolveConfig picks the database to open. An explicit PostgreSQL URL on the
// command line must not carry a password; connection strings from the
// environment or keyring may.
func resolveConfig(flag string) (string, error) {
	if utils.IsPostgresURL(flag) {
		if ok, err := postgres.ValidateConnString(flag); !ok {
			return "", fmt.Errorf("%w\n       Store credentials with 'mindtrack keyring set', the %s environment variable, or a .pgpass file", err, constants.EnvDBConnection)
		}
		return flag, nil
	}

	if flag == constants.DefaultConfigPath {
		if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
			return conn, nil
		}
		if conn, err := keyring.GetConnectionString(); err == nil && conn != "" {
			return conn, nil
		}
	}
	return utils.ExpandHome(flag)
}

// isCredentialCommand reports whether the selected command only touches the
// OS keyring and can run without a database.
func isCredentialCommand(ctx *kong.Context) bool {
	for _, p := range ctx.Path {
		if p.Command != nil && p.Command.Name == "keyring" {
			return true
		}
	}
	return ctx.Selected().Name == "helplines"
}
