// Package testutil provides database helpers and fixtures for tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stocktrack/stocktrack/internal/database"
)

// TestDB is a migrated in-memory catalog. SQL exposes the raw handle the
// repositories take.
type TestDB struct {
	*database.DB
	SQL *sql.DB
}

// NewTestDB opens an in-memory database, applies every migration and
// closes it when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{DB: db, SQL: db.DB}
}

// Truncate empties the given tables, children first.
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	err := tdb.WithTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to truncate %v: %v", tables, err)
	}
}

// AssertRowCount fails the test when table does not hold want rows.
func (tdb *TestDB) AssertRowCount(t *testing.T, table string, want int) {
	t.Helper()

	var got int
	if err := tdb.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	if got != want {
		t.Errorf("expected %d rows in %s, got %d", want, table, got)
	}
}

// ExecSQL runs a setup statement.
func (tdb *TestDB) ExecSQL(t *testing.T, query string, args ...any) {
	t.Helper()

	if _, err := tdb.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v\nSQL: %s", err, query)
	}
}
