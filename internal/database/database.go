package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/pkg/models"
)

// ErrSchemaVersion is returned when the database file was written with a
// schema version this build does not know
var ErrSchemaVersion = errors.New("unsupported schema version")

// ErrNullRow is returned by Import for a dataset holding a null row
var ErrNullRow = errors.New("dataset contains a null row")

// Store is the handle to the local recruitment database. It is the only
// sanctioned way to read or write entities.
type Store struct {
	db    *sql.DB
	log   logrus.FieldLogger
	now   func() time.Time
	hooks *hooks
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger storage failures are reported to
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the clock used by lifecycle hooks
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open creates or opens the SQLite database at path and brings its schema
// up to date. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Store{
		log:   discard,
		now:   models.Now,
		hooks: defaultHooks(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// Open with DSN options for SQLite pragmas
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serializes every operation, the way a single local
	// engine does, and keeps ":memory:" databases on one handle.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s.db = db

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate creates all tables of the registry and records the schema version
func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version != 0 && version != SchemaVersion {
		return fmt.Errorf("%w: found %d, want %d", ErrSchemaVersion, version, SchemaVersion)
	}

	var ddl strings.Builder
	for _, t := range Tables {
		ddl.WriteString(t.DDL())
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, ddl.String()); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion))
		return err
	})
}

// withTx runs fn inside a transaction, rolling back when fn fails
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Rollback after a successful Commit is a no-op. Deferring it also
	// releases the connection when fn panics.
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// fail logs a storage failure and hands the error back unchanged
func (s *Store) fail(err error, msg string, fields logrus.Fields) error {
	s.log.WithError(err).WithFields(fields).Error(msg)
	return err
}

// active reports whether a filter value constrains the result.
// "all" is treated like an empty filter.
func active(v string) bool {
	return v != "" && v != "all"
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
