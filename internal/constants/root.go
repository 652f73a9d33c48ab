package constants

const (
	AppName            = "habitlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitlog"
	DefaultConfigPath  = "~/.config/habitlog/habitlog.db"
	DefaultConfigFile  = "~/.config/habitlog/config.yaml"
	Version            = "v0.3.0"

	// KeyringDatabase is the database config value that resolves the
	// PostgreSQL connection string from the OS keyring.
	KeyringDatabase = "keyring"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "HABITLOG_"

	// MaxHabitNameLength is the maximum habit name length in characters
	MaxHabitNameLength = 100

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlog-"
	BackupFileSuffix = ".db"
)
