package tui

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/backend"
	"github.com/stocktrack/stocktrack/internal/client"
	"github.com/stocktrack/stocktrack/internal/config"
	"github.com/stocktrack/stocktrack/internal/database"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/services/stock"
)

// testItems are the consumables every test backend starts with.
var testItems = []stock.CreateConsumableInput{
	{Code: "TIP-12-EG-1", OrderCode: "S01", Name: "EG tip 12", Category: "Tips", Unit: "box", StockQuantity: 10, SafetyStock: 5, UnitPrice: decimal.RequireFromString("1200"), SupplierName: "LabMart"},
	{Code: "GLV-NIT-M", Name: "Nitrile gloves M", Category: "PPE", Unit: "box", StockQuantity: 0, SafetyStock: 4, UnitPrice: decimal.RequireFromString("980.5")},
	{Code: "ETH-70-500", Name: "Ethanol 70% 500ml", Category: "Reagents", Unit: "bottle", StockQuantity: 3, SafetyStock: 3, UnitPrice: decimal.RequireFromString("450")},
}

// newTestBackend starts the HTTP backend on an in-memory database seeded
// with testItems.
func newTestBackend(t *testing.T) (*httptest.Server, *stock.Service) {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	svc := stock.NewService(db)
	for _, in := range testItems {
		if _, err := svc.CreateConsumable(ctx, in); err != nil {
			t.Fatalf("creating %s: %v", in.Code, err)
		}
	}

	srv := httptest.NewServer(backend.NewRouter(svc))
	t.Cleanup(srv.Close)
	return srv, svc
}

// newTestConfig returns the default configuration pointed at srv, with
// exports going to a temporary directory.
func newTestConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.BaseURL = srv.URL
	cfg.Export.Dir = t.TempDir()
	return cfg
}

// newTestApp creates an App talking to a test backend. The window is set
// to 120x40 and marked ready; nothing is loaded yet.
func newTestApp(t *testing.T) (*App, *stock.Service) {
	t.Helper()

	srv, svc := newTestBackend(t)
	cfg := newTestConfig(t, srv)

	app := New(client.New(cfg.Server), cfg)
	app.width = 120
	app.height = 40
	app.ready = true

	return app, svc
}

// newLoadedApp creates a test App with filter options and the first
// inventory page applied.
func newLoadedApp(t *testing.T) (*App, *stock.Service) {
	t.Helper()

	app, svc := newTestApp(t)
	apply(t, app, app.loadOptions())
	apply(t, app, app.reload())

	if !app.invView.IsLoaded() {
		t.Fatal("expected inventory to be loaded")
	}
	return app, svc
}

// apply runs cmd synchronously and feeds its message back into the App.
// It returns the command produced by that update.
func apply(t *testing.T, app *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()

	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := app.Update(cmd())
	return next
}

// pump runs a blocking command in the background and applies bridge
// events until it finishes, the way the Bubble Tea runtime would.
func pump(t *testing.T, app *App, cmd tea.Cmd) tea.Msg {
	t.Helper()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-app.events:
			app.Update(ev)
		case msg := <-done:
			// Drain anything sent just before the command returned.
			for {
				select {
				case ev := <-app.events:
					app.Update(ev)
				default:
					app.Update(msg)
					return msg
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for command")
			return nil
		}
	}
}

// selectCode moves the inventory selection to the item with code.
func selectCode(t *testing.T, app *App, code string) models.Item {
	t.Helper()

	for n := 0; n < len(testItems)+1; n++ {
		app.invView.MoveUp()
	}
	for n := 0; n < len(testItems); n++ {
		if item, ok := app.invView.SelectedItem(); ok && item.Code == code {
			return item
		}
		app.invView.MoveDown()
	}
	if item, ok := app.invView.SelectedItem(); ok && item.Code == code {
		return item
	}
	t.Fatalf("item %s not in the inventory list", code)
	return models.Item{}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

// typeText sends each rune of s as a key press.
func typeText(app *App, s string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range s {
		_, cmd = app.Update(keyMsg(string(r)))
	}
	return cmd
}
