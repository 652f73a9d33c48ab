package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitlog/internal/constants"
)

// ValidationError reports input rejected before it reaches the store.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// habitInput mirrors the constraints on a habit name. The max tag counts runes.
type habitInput struct {
	Name string `validate:"required,max=100"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateHabitName checks that a habit name is non-empty and at most
// constants.MaxHabitNameLength characters.
func ValidateHabitName(name string) error {
	err := validate.Struct(habitInput{Name: name})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	switch fieldErrs[0].Tag() {
	case "required":
		return &ValidationError{Field: "habit name", Reason: "must not be empty"}
	case "max":
		return &ValidationError{
			Field:  "habit name",
			Value:  truncate(name, 20),
			Reason: fmt.Sprintf("must be at most %d characters", constants.MaxHabitNameLength),
		}
	default:
		return &ValidationError{Field: "habit name", Value: name, Reason: fieldErrs[0].Error()}
	}
}

// DateFromParts combines a year/month/day triplet into a YYYY-MM-DD string,
// rejecting dates that do not exist such as February 30.
func DateFromParts(year, month, day int) (string, error) {
	value := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if year < 1 || year > 9999 {
		return "", &ValidationError{Field: "date", Value: value, Reason: "year must be between 1 and 9999"}
	}
	if month < 1 || month > 12 {
		return "", &ValidationError{Field: "date", Value: value, Reason: "month must be between 1 and 12"}
	}

	// time.Date normalizes out-of-range days, so a changed month means the day does not exist
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Month() != time.Month(month) {
		return "", &ValidationError{Field: "date", Value: value, Reason: "day does not exist in that month"}
	}

	return t.Format(constants.DateFormat), nil
}

// ParseDate validates a YYYY-MM-DD date string and returns it in canonical form.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return t.Format(constants.DateFormat), nil
}

// ParseAmount parses an integer amount.
func ParseAmount(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Value: s, Reason: "must be a whole number"}
	}
	return n, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
