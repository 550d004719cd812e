package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindtrack/internal/assistant"
	"github.com/julianstephens/mindtrack/internal/backup"
	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/keyring"
	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/storage/sqlite"
	"github.com/julianstephens/mindtrack/internal/utils"
)

// AssistantFactory builds the assistant used by chat and insights commands.
type AssistantFactory func(ctx context.Context, settings models.Settings) (*assistant.Assistant, error)

type Context struct {
	Store storage.Provider
	// User overrides the current user stored in settings.
	User         string
	NewAssistant AssistantFactory
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// GeminiAssistant builds an assistant backed by the Gemini API, resolving
// the API key from the environment or the OS keyring.
func GeminiAssistant(ctx context.Context, settings models.Settings) (*assistant.Assistant, error) {
	key, err := keyring.ResolveGeminiAPIKey()
	if err != nil {
		return nil, err
	}
	client, err := assistant.NewGeminiClient(ctx, assistant.ConfigFromSettings(settings, key))
	if err != nil {
		return nil, err
	}
	return assistant.New(client), nil
}

func (c *Context) Assistant(ctx context.Context) (*assistant.Assistant, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	factory := c.NewAssistant
	if factory == nil {
		factory = GeminiAssistant
	}
	return factory(ctx, settings)
}

func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// NowInZone returns the current time in the configured timezone.
func (c *Context) NowInZone() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return c.Now().In(loc), nil
}

// Today returns the current calendar day in the configured timezone.
func (c *Context) Today() (calendar.Date, error) {
	now, err := c.NowInZone()
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.FromTime(now), nil
}

// UserID returns the user every command is scoped to.
func (c *Context) UserID() (string, error) {
	if c.User != "" {
		return c.User, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.CurrentUserID == "" {
		return "", errors.New("no current profile, run 'mindtrack init' first")
	}
	return settings.CurrentUserID, nil
}

// EnsureProfile makes sure a current profile exists, creating an empty
// local one on first use. It returns the profile's ID.
func (c *Context) EnsureProfile() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.CurrentUserID != "" {
		if _, err := c.Store.GetProfile(settings.CurrentUserID); err == nil {
			return settings.CurrentUserID, nil
		} else if !errors.Is(err, storage.ErrNotFound) {
			return "", err
		}
	}

	id := settings.CurrentUserID
	if id == "" {
		id = uuid.New().String()
	}
	ts := c.Now().UTC()
	if err := c.Store.SaveProfile(models.Profile{ID: id, CreatedAt: ts, UpdatedAt: ts}); err != nil {
		return "", err
	}
	settings.CurrentUserID = id
	if err := c.Store.SaveSettings(settings); err != nil {
		return "", fmt.Errorf("failed to save settings: %w", err)
	}
	logger.Info("Created local profile", "id", id)
	return id, nil
}

// PerformAutomaticBackup backs up sqlite stores after a write. Failures are
// logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDate parses a YYYY-MM-DD flag value, defaulting to today when empty.
func (c *Context) ParseDate(value string) (calendar.Date, error) {
	if strings.TrimSpace(value) == "" {
		return c.Today()
	}
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return d, nil
}

// SplitList splits a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
