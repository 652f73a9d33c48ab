// Package config loads habitlog settings from built-in defaults, an optional
// YAML file and HABITLOG_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/utils"
)

type Backup struct {
	Enabled bool `koanf:"enabled"`
	Keep    int  `koanf:"keep" validate:"min=1"`
}

type Config struct {
	// Database is a SQLite path, a PostgreSQL connection string, or the
	// literal "keyring".
	Database string `koanf:"database" validate:"required"`
	Timezone string `koanf:"timezone"`
	Debug    bool   `koanf:"debug"`
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Backup   Backup `koanf:"backup"`

	// File is the config file that was read, or would have been.
	File string `koanf:"-"`
}

var defaults = map[string]any{
	constants.SettingDatabase:      constants.DefaultConfigPath,
	constants.SettingTimezone:      constants.DefaultTimezone,
	constants.SettingDebug:         false,
	constants.SettingLogLevel:      constants.DefaultLogLevel,
	constants.SettingBackupEnabled: constants.DefaultBackupEnabled,
	constants.SettingBackupKeep:    constants.DefaultBackupKeep,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration. An empty path means the default config
// file; a missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = constants.DefaultConfigFile
	}
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(constants.EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = path
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps HABITLOG_BACKUP__KEEP to backup.keep.
func envKey(s string) string {
	s = strings.TrimPrefix(s, constants.EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

func (c *Config) normalize() error {
	c.Database = strings.TrimSpace(c.Database)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Timezone == "" {
		c.Timezone = constants.DefaultTimezone
	}
	if c.IsSQLite() {
		db, err := utils.ExpandHome(c.Database)
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		c.Database = db
	}
	return nil
}

// Validate checks values that koanf cannot type-check on its own.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config value for %s: %v (rule %s)", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return err
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid config value for timezone: %q is not a known IANA timezone", c.Timezone)
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		// Validate already rejected unknown zones.
		return time.Local
	}
	return loc
}

// UsesKeyring reports whether the connection string lives in the OS keyring.
func (c *Config) UsesKeyring() bool {
	return c.Database == constants.KeyringDatabase
}

// IsPostgres reports whether Database is a PostgreSQL connection string.
func (c *Config) IsPostgres() bool {
	return IsPostgres(c.Database)
}

// IsPostgres reports whether database is a PostgreSQL connection string in
// URL or key=value form.
func IsPostgres(database string) bool {
	return strings.HasPrefix(database, "postgres://") ||
		strings.HasPrefix(database, "postgresql://") ||
		strings.Contains(database, "host=")
}

func (c *Config) IsSQLite() bool {
	return !c.UsesKeyring() && !c.IsPostgres()
}

// Dir is the directory holding the config file and the logs.
func (c *Config) Dir() string {
	return filepath.Dir(c.File)
}

// SetDatabase overrides the database from the command line.
func (c *Config) SetDatabase(database string) error {
	c.Database = database
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}
