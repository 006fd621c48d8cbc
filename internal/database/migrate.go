package database

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Section markers inside a migration file.
const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

var migrationName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

// Migration is one numbered schema change.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrator applies the embedded migrations in version order and records
// them in schema_migrations.
type Migrator struct {
	db  *DB
	all []Migration
}

// NewMigrator loads the embedded migrations and makes sure the bookkeeping
// table exists.
func NewMigrator(db *DB) (*Migrator, error) {
	all, err := loadMigrations(migrationFiles)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("creating schema_migrations: %w", err)
	}

	return &Migrator{db: db, all: all}, nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	out := make([]Migration, 0, len(files))
	for _, file := range files {
		base := path.Base(file)
		m := migrationName.FindStringSubmatch(base)
		if m == nil {
			return nil, fmt.Errorf("migration %q: name must look like 001_description.sql", base)
		}
		version, _ := strconv.Atoi(m[1])

		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", base, err)
		}
		up, down := parseMigration(string(body))
		out = append(out, Migration{Version: version, Name: m[2], Up: up, Down: down})
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// parseMigration splits a migration file into its up and down scripts.
// A file without markers is all up.
func parseMigration(content string) (up, down string) {
	body, rollback, found := strings.Cut(content, downMarker)
	if found {
		down = strings.TrimSpace(rollback)
	}
	up = strings.TrimSpace(strings.Replace(body, upMarker, "", 1))
	return up, down
}

// CurrentVersion returns the highest applied version, or 0.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// Pending returns the migrations newer than the current version.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range m.all {
		if mig.Version > current {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the ones applied.
func (m *Migrator) Up(ctx context.Context) ([]Migration, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	var applied []Migration
	for _, mig := range pending {
		err := m.run(ctx, mig.Up, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
				mig.Version, mig.Name, time.Now().UTC().Format(time.RFC3339),
			)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", mig.Version, mig.Name, err)
		}
		slog.Info("applied migration", "version", mig.Version, "name", mig.Name)
		applied = append(applied, mig)
	}
	return applied, nil
}

// Down rolls back the newest applied migration.
func (m *Migrator) Down(ctx context.Context) (Migration, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return Migration{}, err
	}
	if current == 0 {
		return Migration{}, errors.New("no migrations to roll back")
	}

	idx := slices.IndexFunc(m.all, func(mig Migration) bool { return mig.Version == current })
	if idx < 0 {
		return Migration{}, fmt.Errorf("applied migration %d is not embedded", current)
	}
	mig := m.all[idx]
	if mig.Down == "" {
		return Migration{}, fmt.Errorf("migration %d has no down script", current)
	}

	err = m.run(ctx, mig.Down, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", mig.Version)
		return err
	})
	if err != nil {
		return Migration{}, fmt.Errorf("rolling back %d (%s): %w", mig.Version, mig.Name, err)
	}
	slog.Info("rolled back migration", "version", mig.Version, "name", mig.Name)
	return mig, nil
}

// run executes script and then record in one transaction.
func (m *Migrator) run(ctx context.Context, script string, record func(tx *sql.Tx) error) error {
	return m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range splitStatements(script) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				head, _, _ := strings.Cut(stmt, "\n")
				return fmt.Errorf("executing %q: %w", head, err)
			}
		}
		return record(tx)
	})
}

// splitStatements splits a script on semicolons outside quoted text. A
// doubled quote inside a literal toggles twice and so stays quoted.
func splitStatements(script string) []string {
	var out []string
	var quote rune
	start := 0

	flush := func(end int) {
		if stmt := strings.TrimSpace(script[start:end]); stmt != "" {
			out = append(out, stmt)
		}
	}

	for i, r := range script {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ';':
			flush(i)
			start = i + 1
		}
	}
	flush(len(script))
	return out
}
