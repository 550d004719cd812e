package constants

const (
	// General Settings
	SettingTimezone        = "timezone"
	SettingCurrentUserID   = "current_user_id"
	SettingReminderEnabled = "reminder_enabled"
	SettingReminderTime    = "reminder_time"
	SettingLastReminder    = "last_reminder_date"

	// Assistant Settings
	SettingAIModel           = "ai_model"
	SettingAITemperature     = "ai_temperature"
	SettingAIMaxOutputTokens = "ai_max_output_tokens"

	// Default Settings Values
	DefaultTimezone          = "Local" // Use system local timezone by default
	DefaultReminderEnabled   = true
	DefaultReminderTime      = "20:00"
	DefaultAIModel           = "gemini-1.5-flash"
	DefaultAITemperature     = 0.7
	DefaultAITopK            = 40
	DefaultAITopP            = 0.95
	DefaultAIMaxOutputTokens = 1024
)
