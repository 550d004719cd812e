package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mindtrack/internal/cli"
	apperrors "github.com/julianstephens/mindtrack/internal/errors"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/storage/postgres"
	"github.com/julianstephens/mindtrack/internal/storage/sqlite"
	"github.com/julianstephens/mindtrack/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			if absDbPath, err := filepath.Abs(dbPath); err == nil {
				dbPath = absDbPath
			}
			if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, ok := ctx.Store.(*sqlite.Store); ok {
			if _, err := os.Stat(dbPath); err == nil {
				if err := ctx.Store.Close(); err != nil {
					return fmt.Errorf("failed to close existing database: %w", err)
				}
				if err := os.Remove(dbPath); err != nil {
					return fmt.Errorf("failed to delete existing database: %w", err)
				}
				fmt.Printf("Deleted existing database at: %s\n", dbPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to access existing database: %w", err)
			}
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized mindtrack storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	userID, err := ctx.EnsureProfile()
	if err != nil {
		return fmt.Errorf("failed to set up profile: %w", err)
	}
	fmt.Printf("Current profile: %s\n", userID)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if utils.IsPostgresURL(sourcePath) {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	counts, err := CopyData(sourceStore, ctx.Store, func(msg string) { fmt.Println("  " + msg) })
	if err != nil {
		return err
	}
	fmt.Printf("    Migrated %d profiles, %d check-ins, %d goals, %d milestones, %d mood entries, %d journal entries, %d conversations, %d messages\n",
		counts.Profiles, counts.Entries, counts.Goals, counts.Milestones, counts.Moods, counts.Journal, counts.Conversations, counts.Messages)
	return nil
}

// CopyCounts reports how many records CopyData moved.
type CopyCounts struct {
	Profiles      int
	Entries       int
	Goals         int
	Milestones    int
	Moods         int
	Journal       int
	Conversations int
	Messages      int
}

// CopyData copies settings and every profile's records from src into dst.
// Deleted check-ins are not copied.
func CopyData(src, dst storage.Provider, logFn func(string)) (CopyCounts, error) {
	var counts CopyCounts

	logFn("Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return counts, apperrors.Wrap(err, "get settings from source")
	}
	if err := dst.SaveSettings(settings); err != nil {
		return counts, fmt.Errorf("failed to save settings to destination: %w", err)
	}

	logFn("Migrating profiles...")
	profiles, err := src.ListProfiles()
	if err != nil {
		return counts, apperrors.Wrap(err, "get profiles from source")
	}
	for _, p := range profiles {
		if err := dst.SaveProfile(p); err != nil {
			return counts, fmt.Errorf("failed to save profile %s: %w", p.ID, err)
		}
		counts.Profiles++
		if err := copyUserData(src, dst, p.ID, &counts); err != nil {
			return counts, err
		}
	}
	return counts, nil
}

func copyUserData(src, dst storage.Provider, userID string, counts *CopyCounts) error {
	entries, err := src.ListRecoveryEntries(userID, false)
	if err != nil {
		return apperrors.Wrap(err, "get check-ins from source")
	}
	for _, e := range entries {
		if _, err := dst.UpsertRecoveryEntry(e); err != nil {
			return fmt.Errorf("failed to add check-in %s: %w", e.ID, err)
		}
		counts.Entries++
	}

	goals, err := src.ListGoals(userID)
	if err != nil {
		return apperrors.Wrap(err, "get goals from source")
	}
	for _, g := range goals {
		if err := dst.AddGoal(g); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", g.ID, err)
		}
		counts.Goals++
	}

	milestones, err := src.ListMilestones(userID)
	if err != nil {
		return apperrors.Wrap(err, "get milestones from source")
	}
	for _, m := range milestones {
		if err := dst.AddMilestone(m); err != nil {
			return fmt.Errorf("failed to add milestone %s: %w", m.ID, err)
		}
		counts.Milestones++
	}

	moods, err := src.ListMoodEntries(userID, 0)
	if err != nil {
		return apperrors.Wrap(err, "get mood entries from source")
	}
	for _, m := range moods {
		if err := dst.AddMoodEntry(m); err != nil {
			return fmt.Errorf("failed to add mood entry %s: %w", m.ID, err)
		}
		counts.Moods++
	}

	journal, err := src.ListJournalEntries(userID)
	if err != nil {
		return apperrors.Wrap(err, "get journal entries from source")
	}
	for _, j := range journal {
		if err := dst.AddJournalEntry(j); err != nil {
			return fmt.Errorf("failed to add journal entry %s: %w", j.ID, err)
		}
		counts.Journal++
	}

	convs, err := src.ListConversations(userID)
	if err != nil {
		return apperrors.Wrap(err, "get conversations from source")
	}
	for _, conv := range convs {
		messages, err := src.ListChatMessages(conv.ID)
		if err != nil {
			return fmt.Errorf("failed to get messages for conversation %s: %w", conv.ID, err)
		}
		// AddChatMessage maintains the count.
		conv.MessageCount = 0
		if err := dst.CreateConversation(conv); err != nil {
			return fmt.Errorf("failed to add conversation %s: %w", conv.ID, err)
		}
		for _, m := range messages {
			if err := dst.AddChatMessage(m); err != nil {
				return fmt.Errorf("failed to add message %s: %w", m.ID, err)
			}
			counts.Messages++
		}
		counts.Conversations++
	}
	return nil
}
