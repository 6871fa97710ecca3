// Package sqlite is the record store: users and transactions in one SQLite
// file behind a single handle.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
	"moneytracker/internal/infrastructure/migration"
)

const dirPermissions = 0700

type Options struct {
	Path          string
	Driver        string
	MigrationMode migration.Mode
	// Engine overrides the migration engine, mostly for tests.
	Engine migration.MigrationEngine
}

// Storage owns the database handle. Writers take the write lock, readers the
// read lock.
type Storage struct {
	db  *sql.DB
	log *slog.Logger
	mu  sync.RWMutex
}

// DSN builds a file: URI for driver with busy timeout and WAL on. The path is
// made absolute and escaped, so it may contain '?' or '#'.
func DSN(driver, path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	query := url.Values{}
	switch driver {
	case migration.DriverSQLite3:
		query.Set("_busy_timeout", "5000")
		query.Set("_journal_mode", "WAL")
	default:
		query.Add("_pragma", "busy_timeout(5000)")
		query.Add("_pragma", "journal_mode(WAL)")
	}

	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// New migrates the schema at opts.Path and opens the store.
func New(ctx context.Context, opts Options, log *slog.Logger) (*Storage, error) {
	if opts.Driver == "" {
		opts.Driver = migration.DriverSQLite
	}
	if opts.Engine == nil {
		opts.Engine = migration.DefaultEngine
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), dirPermissions); err != nil {
		return nil, errs.Wrap(errs.ErrStorage, "create database directory", err)
	}

	dsn := DSN(opts.Driver, opts.Path)

	mg := migration.NewMigration(migration.Config{
		Driver: opts.Driver,
		DSN:    dsn,
		Mode:   opts.MigrationMode,
	}, opts.Engine, log)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStorage, "open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.ErrStorage, "ping database", err)
	}

	log.Debug("database opened", "path", opts.Path, "driver", opts.Driver)
	return NewWithDB(db, log), nil
}

// NewWithDB wraps an already opened handle. The schema must exist.
func NewWithDB(db *sql.DB, log *slog.Logger) *Storage {
	return &Storage{
		db:  db,
		log: log.With("component", "sqlite"),
	}
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return errs.Wrap(errs.ErrStorage, "close database", err)
	}
	return nil
}

// fail logs err and translates it into the error taxonomy.
func (s *Storage) fail(op string, err error) error {
	if isUniqueViolation(err) {
		s.log.Debug("uniqueness violation", "op", op, "error", err)
		return errs.Wrap(errs.ErrUniquenessViolation, op, err)
	}

	s.log.Error("storage failure", "op", op, "error", err)
	return errs.Wrap(errs.ErrStorage, op, err)
}
