// Package sqlite opens the durable store for the card catalog and presets and
// keeps its schema current with embedded migrations.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // migrate driver backed by modernc
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// TimeLayout is how timestamps are stored in TEXT columns
const TimeLayout = time.RFC3339Nano

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// Config holds database configuration settings
type Config struct {
	// Path is the file path to the SQLite database
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration

	// JournalMode is one of DELETE, TRUNCATE, PERSIST, MEMORY, WAL, OFF
	JournalMode string

	// AutoMigrate runs pending migrations on Open
	AutoMigrate bool
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig(path string) *Config {
	return &Config{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Minute,
		BusyTimeout:     5 * time.Second,
		JournalMode:     "WAL",
		AutoMigrate:     true,
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Path == "" {
		vb.RequiredField("Path")
	}
	if c.MaxOpenConns < 1 {
		vb.Field("MaxOpenConns", "must be at least 1")
	}

	return vb.Build()
}

// Open connects to the database, applying migrations when configured
func Open(ctx context.Context, cfg *Config) (*DB, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sqlite config")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	if cfg.AutoMigrate {
		if err := Migrate(cfg.Path); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(%s)&_pragma=foreign_keys(1)",
		cfg.Path,
		cfg.BusyTimeout.Milliseconds(),
		cfg.JournalMode,
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{conn: conn}, nil
}

// Conn exposes the underlying connection pool
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// TxFunc is a function that runs within a transaction
type TxFunc func(*sql.Tx) error

// WithTransaction runs fn in a transaction, committing on success and
// rolling back on error or panic
func (db *DB) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Wrapf(err, "rollback also failed: %v", rbErr)
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = errors.Wrap(commitErr, "failed to commit transaction")
		}
	}()

	return fn(tx)
}

// Migrate applies every pending embedded migration to the database at path
func Migrate(path string) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to access migrations")
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return errors.Wrap(err, "failed to create migration source")
	}

	normalized := filepath.ToSlash(path)
	if filepath.IsAbs(path) && normalized[0] != '/' {
		normalized = "/" + normalized
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, "sqlite://"+normalized)
	if err != nil {
		return errors.Wrap(err, "failed to create migrator")
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

// FormatTime renders a timestamp for storage
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid stored time %q", s)
	}
	return t, nil
}
