// Package migration keeps the SQLite schema at the newest embedded version.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/exp/slog"

	// Blank imports register the database/sql drivers opened by DefaultEngine
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"moneytracker/internal/domain/errs"
)

const sourceDir = "migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Source returns the embedded migration files.
func Source() fs.FS {
	return embedded
}

const (
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
)

// Mode decides what happens to data when an older schema is upgraded.
type Mode string

const (
	// ModeAdditive applies pending up-migrations and keeps the data.
	ModeAdditive Mode = "additive"
	// ModeDestructive drops every table and recreates the schema whenever the
	// stored version is older than the newest migration.
	ModeDestructive Mode = "destructive"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAdditive, "":
		return ModeAdditive, nil
	case ModeDestructive:
		return ModeDestructive, nil
	}
	return "", fmt.Errorf("unknown migration mode %q", s)
}

// Migrator is the subset of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Down() error
	Version() (version uint, dirty bool, err error)
	Close() (error, error)
}

// MigrationEngine creates a migrator so tests can avoid a real database.
type MigrationEngine func(driver, dsn string, fsys fs.FS) (Migrator, error)

type Config struct {
	Driver string
	DSN    string
	Mode   Mode
}

type Migration struct {
	cfg    Config
	engine MigrationEngine
	fsys   fs.FS
	log    *slog.Logger
}

type Option func(*Migration)

// WithSource replaces the embedded migrations. fsys must hold a
// "migrations" directory.
func WithSource(fsys fs.FS) Option {
	return func(mg *Migration) {
		mg.fsys = fsys
	}
}

func NewMigration(cfg Config, engine MigrationEngine, log *slog.Logger, opts ...Option) *Migration {
	mg := &Migration{
		cfg:    cfg,
		engine: engine,
		fsys:   embedded,
		log:    log.With("component", "migration"),
	}
	for _, opt := range opts {
		opt(mg)
	}
	return mg
}

// DefaultEngine opens a dedicated connection and builds a migrator over it.
// Closing the migrator closes that connection.
func DefaultEngine(driver, dsn string, fsys fs.FS) (Migrator, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration database: %w", err)
	}

	var dbDriver database.Driver
	switch driver {
	case DriverSQLite:
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case DriverSQLite3:
		dbDriver, err = migratesqlite3.WithInstance(db, &migratesqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create %s migration driver: %w", driver, err)
	}

	src, err := iofs.New(fsys, sourceDir)
	if err != nil {
		dbDriver.Close()
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		src.Close()
		dbDriver.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// Up brings the schema to the newest version. In destructive mode an outdated
// schema is dropped first, discarding all stored rows.
func (mg *Migration) Up() (err error) {
	latest, err := LatestVersion(mg.fsys)
	if err != nil {
		return errs.Wrap(errs.ErrStorage, "read migrations", err)
	}

	m, err := mg.engine(mg.cfg.Driver, mg.cfg.DSN, mg.fsys)
	if err != nil {
		return errs.Wrap(errs.ErrStorage, "open migrations", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = errs.Wrap(errs.ErrStorage, "close migration source", serr)
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = errs.Wrap(errs.ErrStorage, "close migration database", dberr)
			}
		}
	}()

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		current = 0
	case err != nil:
		return errs.Wrap(errs.ErrStorage, "read schema version", err)
	}
	if dirty {
		mg.log.Error("schema is dirty", "version", current)
		return errs.Wrap(errs.ErrStorage, "migrate", fmt.Errorf("schema version %d is dirty", current))
	}

	if mg.cfg.Mode == ModeDestructive && current > 0 && current < latest {
		mg.log.Warn("outdated schema, dropping all tables", "from", current, "to", latest)
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return errs.Wrap(errs.ErrStorage, "migrate down", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errs.Wrap(errs.ErrStorage, "migrate up", err)
	}

	if current != latest {
		mg.log.Info("schema migrated", "from", current, "to", latest, "mode", mg.cfg.Mode)
	}
	return nil
}

// LatestVersion returns the highest migration version found in fsys.
func LatestVersion(fsys fs.FS) (uint, error) {
	entries, err := fs.ReadDir(fsys, sourceDir)
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}

	var latest uint
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m, err := source.Parse(entry.Name())
		if err != nil {
			continue
		}
		if m.Version > latest {
			latest = m.Version
		}
	}

	if latest == 0 {
		return 0, fmt.Errorf("no migrations in %s", sourceDir)
	}
	return latest, nil
}
