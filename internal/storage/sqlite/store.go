package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

// dsnParams enables foreign keys on every pooled connection and makes
// transactions take the write lock at BEGIN so concurrent upserts serialize.
const dsnParams = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

var _ storage.Provider = (*Store)(nil)

type Store struct {
	path string
	db   *sql.DB
	tx   *sql.Tx
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &storage.StorageError{Op: "create config directory", Err: err}
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	return s.EnsureSchema()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return &storage.StorageError{
			Op:  "load",
			Err: fmt.Errorf("%s does not exist, run 'habitlog init' first", s.path),
		}
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.EnsureSchema()
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path+dsnParams)
	if err != nil {
		return &storage.StorageError{Op: "open database", Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return &storage.StorageError{Op: "open database", Err: err}
	}
	s.db = db
	logger.Debug("Opened SQLite store", "path", s.path)
	return nil
}

func (s *Store) Close() error {
	if s.tx != nil {
		return fmt.Errorf("cannot close a transaction-bound store")
	}
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// conn returns the transaction when the store is bound to one.
func (s *Store) conn() (querier, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	if s.db == nil {
		return nil, &storage.StorageError{Op: "query", Err: fmt.Errorf("store is not loaded")}
	}
	return s.db, nil
}

func (s *Store) WithTx(fn func(storage.HabitStore) error) error {
	return s.inTx(func(ts *Store) error {
		return fn(ts)
	})
}

// inTx runs fn with a store bound to a transaction. A store that is already
// transaction-bound reuses its transaction.
func (s *Store) inTx(fn func(*Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	if s.db == nil {
		return &storage.StorageError{Op: "begin transaction", Err: fmt.Errorf("store is not loaded")}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &storage.StorageError{Op: "begin transaction", Err: err}
	}

	if err := fn(&Store{path: s.path, db: s.db, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn("Rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return &storage.StorageError{Op: "commit transaction", Err: err}
	}
	return nil
}
