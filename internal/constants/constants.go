package constants

import "time"

const (
	AppName            = "growlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/growlog/growlog.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Document tree roots
	UsersCollection         = "users"
	ArchivedUsersCollection = "archived_users"

	// Per-user collections
	PlantsCollection    = "plants"
	LogsCollection      = "logs"
	RemindersCollection = "reminders"
	SessionsCollection  = "sessions"
	SettingsCollection  = "settings"
	PreferencesDocID    = "preferences"

	// Reminder constants
	MinReminderIntervalDays  = 1
	MaxReminderIntervalDays  = 99
	DefaultDueSoonWindow     = 24 * time.Hour
	DefaultSnoozeHours       = 1
	DefaultWatchDebounce     = 250 * time.Millisecond
	DefaultPostgresPollEvery = 2 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "growlog-"
	BackupFileSuffix = ".db"

	// Preferences cache
	PrefsCacheFileName = "prefs-cache.json"

	// Notify constants
	NotifierLockfileName   = "growlog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.growlog"
	TrayAppExecutable      = "growlog-tray"

	// Plant stages
	StageSeedling     = "seedling"
	StageVegetative   = "vegetative"
	StageFlowering    = "flowering"
	StageTransplanted = "transplanted"
	StageHarvested    = "harvested"

	// API
	DefaultAPIAddr = "127.0.0.1:8787"
)
