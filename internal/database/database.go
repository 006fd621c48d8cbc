// Package database opens the SQLite store behind the development backend
// and applies its schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by operations on a closed database.
var ErrClosed = errors.New("database is closed")

const memoryPath = ":memory:"

// filePragmas tune a file-backed database for one writer and a few readers.
var filePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA cache_size=-8000",
}

// DB is a SQLite handle that refuses new work once closed.
type DB struct {
	*sql.DB
	path   string
	closed atomic.Bool
}

// Open opens the database at dbPath in WAL mode, creating its directory.
// ":memory:" opens a private in-memory database instead.
func Open(dbPath string) (*DB, error) {
	if dbPath == memoryPath {
		return NewInMemory()
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := open(fmt.Sprintf("file:%s?_txlock=immediate&_timeout=5000", dbPath), dbPath, filePragmas)
	if err != nil {
		return nil, err
	}

	if err := db.CheckIntegrity(context.Background()); err != nil {
		slog.Warn("database integrity check failed", "path", dbPath, "error", err)
	}
	return db, nil
}

// NewInMemory opens a private in-memory database with foreign keys on and
// no migrations applied.
func NewInMemory() (*DB, error) {
	return open(memoryPath, memoryPath, []string{"PRAGMA foreign_keys=ON"})
}

func open(dsn, path string, pragmas []string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite has a single writer, and each in-memory connection would be a
	// separate empty database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	return &DB{DB: sqlDB, path: path}, nil
}

// CheckIntegrity runs a quick consistency check of the database file.
func (db *DB) CheckIntegrity(ctx context.Context) error {
	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&result); err != nil {
		return fmt.Errorf("running integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check: %s", result)
	}
	return nil
}

// Close checkpoints the WAL and closes the connection. It is idempotent.
func (db *DB) Close() error {
	if !db.closed.CompareAndSwap(false, true) {
		return nil
	}

	if db.path != memoryPath {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			slog.Warn("final checkpoint failed", "error", err)
		}
	}

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (db *DB) IsClosed() bool {
	return db.closed.Load()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// BeginTx starts a transaction unless the database is closed.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if db.IsClosed() {
		return nil, ErrClosed
	}
	return db.DB.BeginTx(ctx, opts)
}

// WithTransaction runs fn in a transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including on panic.
func (db *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// HealthCheck verifies the database still answers.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.IsClosed() {
		return ErrClosed
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}
	_, err = m.Up(ctx)
	return err
}
