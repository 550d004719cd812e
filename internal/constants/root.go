package constants

import "time"

const (
	AppName            = "mindtrack"
	DefaultKeyringUser = "database-connection"
	GeminiKeyringUser  = "gemini-api-key"
	DefaultConfigPath  = "~/.config/mindtrack/mindtrack.db"
	Version            = "v0.3.0"
	EnvDBConnection    = "MINDTRACK_DB_CONNECTION"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mindtrack-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "mindtrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.mindtrack"
	TrayExecutablePrefix   = "mindtrack-tray"

	// AI request timeout used by CLI commands
	AssistantTimeout = 60 * time.Second
)

// SessionState represents the current state of the TUI application
type SessionState int

// Tab states come first, in display order.
const (
	StateDashboard SessionState = iota
	StateGoals
	StateMilestones
	StateHelplines
	StateCheckIn
)
