package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is matched by every StorageError. Callers treat it as fatal.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicateHabit     = errors.New("habit already exists")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrDuplicateLog       = errors.New("log already exists for this date")
	ErrLogNotFound        = errors.New("log not found")
)

// StorageError reports a failure of the underlying engine: it could not be
// opened, the schema is incompatible, or a statement failed for a reason
// other than a key constraint.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// HabitError wraps ErrDuplicateHabit or ErrHabitNotFound with the habit name.
type HabitError struct {
	Habit string
	Err   error
}

func (e *HabitError) Error() string {
	return fmt.Sprintf("habit %q: %v", e.Habit, e.Err)
}

func (e *HabitError) Unwrap() error { return e.Err }

// LogError wraps ErrDuplicateLog or ErrLogNotFound with the natural key.
type LogError struct {
	Habit string
	Date  string
	Err   error
}

func (e *LogError) Error() string {
	return fmt.Sprintf("log %q on %s: %v", e.Habit, e.Date, e.Err)
}

func (e *LogError) Unwrap() error { return e.Err }

// Wrap returns err as a StorageError unless it already carries a typed kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		se *StorageError
		he *HabitError
		le *LogError
	)
	if errors.As(err, &se) || errors.As(err, &he) || errors.As(err, &le) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
