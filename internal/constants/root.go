package constants

import "time"

const (
	AppName            = "tokei"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "analysis-api-key"
	DefaultConfigDir   = "~/.config/tokei"
	DefaultConfigPath  = "~/.config/tokei/config.yaml"
	DefaultDBPath      = "~/.config/tokei/tokei.db"
	Version            = "v0.3.0"

	// DateFormat is the day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Day domain
	MinutesPerHour = 60
	HoursPerDay    = 24
	MinutesPerDay  = MinutesPerHour * HoursPerDay

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tokei-"
	BackupFileSuffix = ".db"

	// Persistence
	DeferredResaveDelay = 2 * time.Second

	// Labels
	UntitledLabel          = "untitled"
	EmptyScheduleMessage   = "No schedule today.\n\nAdd an appointment to start planning your day."
	NoAnalysisMessage      = "No analysis available."
	DefaultRolloverCron    = "0 0 * * *"
	DefaultAnalysisModel   = "gpt-3.5-turbo"
	DefaultAnalysisURL     = "https://api.openai.com/v1/chat/completions"
	DefaultAnalysisTokens  = 500
	DefaultAnalysisTemp    = 0.7
	DefaultAnalysisTimeout = 30 * time.Second
)
