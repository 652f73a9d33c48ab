package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// BackupTimestampFormat is the timestamp used in backup file names
	BackupTimestampFormat = "20060102-150405"
)
