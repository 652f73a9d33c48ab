package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Store struct {
	connStr string
	db      *sql.DB
	tx      *sql.Tx
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath points unqualified table names at the habitlog schema
// unless the caller already chose a search_path.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasDSNKey(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasDSNKey reports whether a key=value connection string sets key.
func hasDSNKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), key) {
			return true
		}
	}
	return false
}

func hasSearchPathParam(connStr string) bool {
	return hasDSNKey(connStr, "search_path")
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNKey(connStr, "sslmode")
}

// ValidateConnString accepts URL and key=value connection strings that
// lib/pq can parse. A password fails with ErrEmbeddedCredentials.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if hasDSNKey(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

// HasEmbeddedCredentials reports whether a connection string carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := ValidateConnString(connStr)
	return errors.Is(err, ErrEmbeddedCredentials)
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return &storage.StorageError{Op: "create schema", Err: err}
	}
	s.db = db
	return s.EnsureSchema()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db
	return s.EnsureSchema()
}

// open returns a pinged handle. Nothing is kept on failure.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, &storage.StorageError{Op: "open database", Err: err}
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := s.ping(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Store) ping(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return &storage.StorageError{
				Op:  "connect",
				Err: fmt.Errorf("%w (hint: try adding ?sslmode=disable to your connection string)", err),
			}
		}
		return &storage.StorageError{Op: "connect", Err: err}
	}
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
	return "postgresql"
}

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

	if err := fn(&Store{connStr: s.connStr, db: s.db, tx: tx}); err != nil {
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

func errorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isKeyViolation(err error) bool {
	return errorCode(err) == "23505" // unique_violation
}

func isForeignKeyViolation(err error) bool {
	return errorCode(err) == "23503" // foreign_key_violation
}
