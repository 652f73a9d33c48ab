package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Kind names the category of err for reports to the user.
func Kind(err error) string {
	var vErr *validation.ValidationError
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &vErr):
		return "invalid input"
	case stderrors.Is(err, storage.ErrStorageUnavailable):
		return "storage failure"
	case stderrors.Is(err, storage.ErrDuplicateHabit):
		return "duplicate habit"
	case stderrors.Is(err, storage.ErrHabitNotFound):
		return "unknown habit"
	case stderrors.Is(err, storage.ErrDuplicateLog):
		return "duplicate log"
	case stderrors.Is(err, storage.ErrLogNotFound):
		return "missing log"
	default:
		return "unexpected error"
	}
}

// IsRecoverable reports whether an interactive session can carry on after
// err. Input and key errors are recoverable; storage failures and anything
// unclassified are not.
func IsRecoverable(err error) bool {
	switch Kind(err) {
	case "invalid input", "duplicate habit", "unknown habit", "duplicate log", "missing log":
		return true
	}
	return false
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "kind", Kind(err), "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
