// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so it never has to appear in config files or shell history.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitlog/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored
	ErrNotFound = errors.New("connection string not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Secret addresses one keyring entry.
type Secret struct {
	Service string
	User    string
}

// ConnectionString is the entry that holds the database connection string.
func ConnectionString() Secret {
	return Secret{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (s Secret) Get() (string, error) {
	value, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

func (s Secret) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(s.Service, s.User, value); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func (s Secret) Delete() error {
	if err := keyring.Delete(s.Service, s.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers at all. A missing entry
// still counts as available.
func Available() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// MaskPassword hides the password of a PostgreSQL connection string in
// either URL or key=value form.
func MaskPassword(connStr string) string {
	if rest, ok := cutScheme(connStr); ok {
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return connStr
		}
		userInfo := rest[:at]
		colon := strings.Index(userInfo, ":")
		if colon == -1 {
			return connStr
		}
		prefix := connStr[:len(connStr)-len(rest)]
		return prefix + userInfo[:colon] + ":****" + rest[at:]
	}

	if !strings.Contains(connStr, "password=") {
		return connStr
	}
	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}

func cutScheme(connStr string) (string, bool) {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(connStr, scheme); ok {
			return rest, true
		}
	}
	return "", false
}
