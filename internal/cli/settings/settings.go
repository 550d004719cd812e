package settings

import (
	"fmt"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/utils"
	"github.com/julianstephens/mindtrack/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone          *string  `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
	ReminderEnabled   *bool    `help:"Enable or disable check-in reminders."`
	ReminderTime      *string  `help:"Time after which a missing check-in triggers a reminder (HH:MM)."`
	AIModel           *string  `name:"ai-model" help:"Generative model used by the assistant."`
	AITemperature     *float64 `name:"ai-temperature" help:"Sampling temperature (0-2)."`
	AIMaxOutputTokens *int     `name:"ai-max-output-tokens" help:"Maximum length of assistant replies in tokens."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Current Profile:   %s\n", settings.CurrentUserID)
		fmt.Println("\nReminder Settings:")
		fmt.Printf("  Reminder Enabled:  %v\n", settings.ReminderEnabled)
		fmt.Printf("  Reminder Time:     %s\n", settings.ReminderTime)
		fmt.Println("\nAssistant Settings:")
		fmt.Printf("  Model:             %s\n", settings.AIModel)
		fmt.Printf("  Temperature:       %g\n", settings.AITemperature)
		fmt.Printf("  Max Output Tokens: %d\n", settings.AIMaxOutputTokens)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ReminderEnabled != nil {
		settings.ReminderEnabled = *c.ReminderEnabled
		updated = true
	}
	if c.ReminderTime != nil {
		result := validation.New().ValidateReminderTime(*c.ReminderTime)
		if err := result.Err(); err != nil {
			return err
		}
		settings.ReminderTime = *c.ReminderTime
		updated = true
	}
	if c.AIModel != nil {
		if *c.AIModel == "" {
			return fmt.Errorf("ai model cannot be empty")
		}
		settings.AIModel = *c.AIModel
		updated = true
	}
	if c.AITemperature != nil {
		if *c.AITemperature < 0 || *c.AITemperature > 2 {
			return fmt.Errorf("ai temperature must be between 0 and 2")
		}
		settings.AITemperature = *c.AITemperature
		updated = true
	}
	if c.AIMaxOutputTokens != nil {
		if *c.AIMaxOutputTokens <= 0 {
			return fmt.Errorf("ai max output tokens must be positive")
		}
		settings.AIMaxOutputTokens = *c.AIMaxOutputTokens
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
