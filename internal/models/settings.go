package models

// Settings represents application-wide settings
type Settings struct {
	Timezone          string  `json:"timezone"`             // IANA timezone name (e.g. "Asia/Kolkata", or "Local" for system timezone)
	CurrentUserID     string  `json:"current_user_id"`      // profile every command is scoped to
	ReminderEnabled   bool    `json:"reminder_enabled"`     // whether check-in reminders are sent
	ReminderTime      string  `json:"reminder_time"`        // HH:MM after which a missing check-in triggers a reminder
	LastReminderDate  string  `json:"last_reminder_date"`   // YYYY-MM-DD of the last reminder sent, empty if none
	AIModel           string  `json:"ai_model"`             // generative model used by the assistant
	AITemperature     float64 `json:"ai_temperature"`       // sampling temperature
	AIMaxOutputTokens int     `json:"ai_max_output_tokens"` // response length limit
}
