package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOpenAndMigrate(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "data", "stocktrack.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.HealthCheck(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}

	applied, err := m.Up(ctx)
	if err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	if len(applied) == 0 {
		t.Fatal("expected migrations to be applied")
	}
	latest := applied[len(applied)-1].Version

	for _, table := range []string{"consumables", "orders", "stock_movements"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	pending, err := m.Pending(ctx)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending migrations, got %d", len(pending))
	}

	again, err := m.Up(ctx)
	if err != nil || len(again) != 0 {
		t.Errorf("second Up applied %d migrations, err %v", len(again), err)
	}

	rolled, err := m.Down(ctx)
	if err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if rolled.Version != latest {
		t.Errorf("rolled back %d, want %d", rolled.Version, latest)
	}
	version, err := m.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("current version failed: %v", err)
	}
	if version >= latest {
		t.Errorf("expected version below %d, got %d", latest, version)
	}
}

func TestMigrate_InMemory(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM consumables").Scan(&n); err != nil {
		t.Fatalf("consumables table unusable: %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
	if !db.IsClosed() {
		t.Error("expected closed")
	}
	if err := db.HealthCheck(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from health check, got %v", err)
	}
	if _, err := db.BeginTx(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from BeginTx, got %v", err)
	}
}

func TestWithTransaction(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Exec("CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO t VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO t VALUES (2)")
		return err
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	var sum int
	if err := db.QueryRow("SELECT COALESCE(SUM(x), 0) FROM t").Scan(&sum); err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 2 {
		t.Errorf("expected only the committed row, sum = %d", sum)
	}
}

func TestLoadMigrations(t *testing.T) {
	t.Run("sorted", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/002_orders.sql": {Data: []byte("CREATE TABLE b (x);")},
			"migrations/001_items.sql":  {Data: []byte("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;")},
		}
		all, err := loadMigrations(fsys)
		if err != nil {
			t.Fatalf("loadMigrations: %v", err)
		}
		if len(all) != 2 || all[0].Version != 1 || all[1].Name != "orders" {
			t.Errorf("unexpected migrations %+v", all)
		}
	})

	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"bad name", fstest.MapFS{"migrations/items.sql": {Data: []byte("SELECT 1;")}}},
		{"duplicate version", fstest.MapFS{
			"migrations/001_a.sql": {Data: []byte("SELECT 1;")},
			"migrations/1_b.sql":   {Data: []byte("SELECT 1;")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadMigrations(tt.fsys); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		up, down string
	}{
		{"both sections", "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n", "CREATE TABLE a (x);", "DROP TABLE a;"},
		{"no markers", "CREATE TABLE a (x);\n", "CREATE TABLE a (x);", ""},
		{"up only", "-- +migrate Up\nCREATE TABLE a (x);", "CREATE TABLE a (x);", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := parseMigration(tt.content)
			if up != tt.up || down != tt.down {
				t.Errorf("parseMigration() = %q, %q; want %q, %q", up, down, tt.up, tt.down)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{"semicolon in literal", "INSERT INTO a VALUES ('x;y'); SELECT 1;", []string{"INSERT INTO a VALUES ('x;y')", "SELECT 1"}},
		{"doubled quote", "INSERT INTO a VALUES ('it''s;'); SELECT 2", []string{"INSERT INTO a VALUES ('it''s;')", "SELECT 2"}},
		{"empty statements", ";;  ;", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitStatements(tt.script)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d statements %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("statement %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
