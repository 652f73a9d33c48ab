package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/menu"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/postgres"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
)

// ErrBackupsUnsupported is returned by backup commands on non-SQLite stores.
var ErrBackupsUnsupported = errors.New("backups are only supported for SQLite databases")

// OpenStore builds the provider for a database setting: a SQLite path, a
// PostgreSQL connection string, or "keyring". The store is not loaded.
func OpenStore(database string) (storage.Provider, error) {
	switch {
	case database == constants.KeyringDatabase:
		connStr, err := keyring.ConnectionString().Get()
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("%w, run 'habitlog keyring set' first", err)
		}
		if err != nil {
			return nil, err
		}
		// Passwords are acceptable here, the keyring is encrypted.
		return postgres.New(connStr), nil
	case config.IsPostgres(database):
		if postgres.HasEmbeddedCredentials(database) {
			return nil, fmt.Errorf("%w: store it with 'habitlog keyring set' or use .pgpass / PGPASSWORD instead",
				postgres.ErrEmbeddedCredentials)
		}
		return postgres.New(database), nil
	default:
		return sqlite.NewStore(database), nil
	}
}

type Context struct {
	Store    storage.Provider
	Tracker  *tracker.Service
	Config   *config.Config
	Prompter menu.Prompter
	Out      io.Writer
}

// NewContext wires the service to store using the timezone from cfg.
func NewContext(store storage.Provider, cfg *config.Config, prompter menu.Prompter) *Context {
	return &Context{
		Store:    store,
		Tracker:  tracker.New(store, tracker.WithLocation(cfg.Location())),
		Config:   cfg,
		Prompter: prompter,
		Out:      os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// BackupManager returns the backup manager for a SQLite store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrBackupsUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Config.Backup.Keep), nil
}

// PerformAutomaticBackup snapshots the database before destructive changes.
// Failures are logged and never interrupt the caller.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backup.Enabled {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks the user unless assumeYes is set.
func (c *Context) Confirm(question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.Prompter == nil {
		return false, errors.New("confirmation required, pass --yes to proceed")
	}
	return c.Prompter.Confirm(question)
}
