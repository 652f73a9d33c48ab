package storage

import "github.com/julianstephens/habitlog/internal/models"

// HabitStore holds the data primitives over habits and their daily logs.
// A transaction-bound HabitStore is handed to the callback of Provider.WithTx.
type HabitStore interface {
	// Habits
	AddHabit(name string) error
	ListHabits() ([]string, error)
	HabitExists(name string) (bool, error)
	// DeleteHabit removes the habit and every log referencing it atomically.
	DeleteHabit(name string) error

	// Habit Logs
	// GetLog reports ok=false when no log exists for the day; that is not an error.
	GetLog(habit, date string) (log models.HabitLog, ok bool, err error)
	ListLogs(habit string) ([]models.HabitLog, error)
	InsertLog(models.HabitLog) error
	UpdateLog(models.HabitLog) error
	// DeleteLog is a no-op when the log does not exist.
	DeleteLog(habit, date string) error
}

type Provider interface {
	HabitStore

	// Lifecycle
	Init() error
	Load() error
	Close() error
	EnsureSchema() error

	// WithTx runs fn against a view of the store bound to a single
	// transaction. The transaction commits when fn returns nil.
	WithTx(fn func(HabitStore) error) error

	// Bulk Retrieval for Migration
	ListAllLogs() ([]models.HabitLog, error)

	// Utils
	GetConfigPath() string
}
