package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/mindtrack/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCurrentUserID:
			settings.CurrentUserID = value
		case constants.SettingReminderEnabled:
			settings.ReminderEnabled = value == "true"
		case constants.SettingReminderTime:
			settings.ReminderTime = value
		case constants.SettingLastReminder:
			settings.LastReminderDate = value
		case constants.SettingAIModel:
			settings.AIModel = value
		case constants.SettingAITemperature:
			t, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing ai_temperature: %w", err)
			}
			settings.AITemperature = t
		case constants.SettingAIMaxOutputTokens:
			if _, err := fmt.Sscanf(value, "%d", &settings.AIMaxOutputTokens); err != nil {
				return Settings{}, fmt.Errorf("parsing ai_max_output_tokens: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:          settings.Timezone,
		constants.SettingCurrentUserID:     settings.CurrentUserID,
		constants.SettingReminderEnabled:   fmt.Sprintf("%v", settings.ReminderEnabled),
		constants.SettingReminderTime:      settings.ReminderTime,
		constants.SettingLastReminder:      settings.LastReminderDate,
		constants.SettingAIModel:           settings.AIModel,
		constants.SettingAITemperature:     strconv.FormatFloat(settings.AITemperature, 'f', -1, 64),
		constants.SettingAIMaxOutputTokens: fmt.Sprintf("%d", settings.AIMaxOutputTokens),
	}
}

// DefaultSettings returns the settings a fresh store is initialised with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:          constants.DefaultTimezone,
		ReminderEnabled:   constants.DefaultReminderEnabled,
		ReminderTime:      constants.DefaultReminderTime,
		AIModel:           constants.DefaultAIModel,
		AITemperature:     constants.DefaultAITemperature,
		AIMaxOutputTokens: constants.DefaultAIMaxOutputTokens,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ReminderTime == "" {
		settings.ReminderTime = constants.DefaultReminderTime
	}
	if settings.AIModel == "" {
		settings.AIModel = constants.DefaultAIModel
	}
	if settings.AITemperature == 0 {
		settings.AITemperature = constants.DefaultAITemperature
	}
	if settings.AIMaxOutputTokens == 0 {
		settings.AIMaxOutputTokens = constants.DefaultAIMaxOutputTokens
	}
}
