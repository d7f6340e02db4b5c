// Package store persists corpus statistics in SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver.
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/verte-zerg/corpstat/internal/config"
	"github.com/verte-zerg/corpstat/internal/corpus"
)

//go:embed migrations
var migrations embed.FS

type dialect struct {
	driver     string
	goose      goose.Dialect
	migrations string
	sq         squirrel.StatementBuilderType
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return dialect{
			driver:     "sqlite",
			goose:      goose.DialectSQLite3,
			migrations: "migrations/sqlite",
			sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		}, nil
	case config.DriverPostgres:
		return dialect{
			driver:     "pgx",
			goose:      goose.DialectPostgres,
			migrations: "migrations/postgres",
			sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		}, nil
	}
	return dialect{}, fmt.Errorf("store: unknown driver %q", driver)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store wraps database access for words, transitions and imports.
type Store struct {
	db *sql.DB
	d  dialect
}

var _ corpus.Store = (*Store)(nil)

// Open connects to the configured database and applies migrations. For
// SQLite the parent directory of the DSN path is created.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DSN
	if d.goose == goose.DialectSQLite3 {
		if dsn == "" {
			dsn = config.DefaultDBPath()
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("store: create db dir: %w", err)
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if d.goose == goose.DialectSQLite3 {
		// One writer; a second connection would hit SQLITE_BUSY mid-transaction.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, d: d}
	if err := s.migrate(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	fsys, err := fs.Sub(migrations, s.d.migrations)
	if err != nil {
		return fmt.Errorf("store: migrations: %w", err)
	}
	provider, err := goose.NewProvider(s.d.goose, s.db, fsys)
	if err != nil {
		return fmt.Errorf("store: goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// RunInTx runs fn with a Recorder bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise,
// including when fn panics.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, rec corpus.Recorder) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	rec := &txRecorder{q: tx, sq: s.d.sq, ids: map[string]int64{}}
	if err := fn(ctx, rec); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("store: rollback failed: %w (original error: %w)", rerr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}
