package constants

const (
	// Config keys
	SettingDatabase      = "database"
	SettingTimezone      = "timezone"
	SettingDebug         = "debug"
	SettingLogLevel      = "log_level"
	SettingBackupEnabled = "backup.enabled"
	SettingBackupKeep    = "backup.keep"

	// Default config values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultLogLevel      = "warn"
	DefaultBackupEnabled = true
	DefaultBackupKeep    = MaxBackups
)
