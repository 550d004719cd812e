package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/notifier"
	"github.com/julianstephens/mindtrack/internal/recovery"
	"github.com/julianstephens/mindtrack/internal/storage"
)

var sendReminder = func(ctx context.Context, msg string) error {
	return notifier.New().Notify(ctx, msg)
}

// RemindCmd is meant to be run periodically (cron, systemd timer or the tray
// app) and sends one reminder once the reminder time passes without a check-in.
type RemindCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.ReminderEnabled {
		if c.DryRun {
			fmt.Println("Reminders are disabled in settings.")
		}
		return nil
	}

	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	now, err := ctx.NowInZone()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	loggedToday := true
	if _, err := ctx.Store.GetRecoveryEntry(userID, today); errors.Is(err, storage.ErrNotFound) {
		loggedToday = false
	} else if err != nil {
		return fmt.Errorf("failed to check today's entry: %w", err)
	}
	entries, err := ctx.Store.ListRecoveryEntries(userID, false)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	streak := recovery.Streak(entries, today.AddDays(-1))

	msg, due := notifier.CheckInReminder(settings, now, loggedToday, streak)
	if !due {
		if c.DryRun {
			fmt.Println("No reminder due.")
		}
		return nil
	}

	if c.DryRun {
		fmt.Printf("[DRY RUN] %s\n", msg)
		return nil
	}

	sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := sendReminder(sendCtx, msg); err != nil {
		if !errors.Is(err, notifier.ErrTrayNotRunning) {
			return fmt.Errorf("failed to send reminder: %w", err)
		}
		logger.Warn("Tray app not running, printing reminder instead")
		fmt.Println(msg)
	} else {
		logger.Info("Sent check-in reminder", "streak", streak)
	}

	settings.LastReminderDate = today.String()
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to record reminder: %w", err)
	}
	return nil
}
