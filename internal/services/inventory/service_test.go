package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
)

type fakeSource struct {
	results map[string]models.InventoryResult
	err     error
	calls   []models.FilterCriteria
	options models.FilterOptions
}

func (f *fakeSource) Inventory(_ context.Context, c models.FilterCriteria) (models.InventoryResult, error) {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return models.InventoryResult{}, f.err
	}
	return f.results[c.SearchText], nil
}

func (f *fakeSource) FilterOptions(context.Context) (models.FilterOptions, error) {
	return f.options, f.err
}

func result(codes ...string) models.InventoryResult {
	items := make([]models.Item, len(codes))
	for i, c := range codes {
		items[i] = models.Item{Code: c}
	}
	return models.InventoryResult{Items: items, Filtered: len(items), Total: 10}
}

func TestLoad_CommitsSnapshot(t *testing.T) {
	src := &fakeSource{results: map[string]models.InventoryResult{"tip": result("TIP-12-EG-1")}}
	svc := NewService(src)

	snap, err := svc.Load(context.Background(), models.FilterCriteria{SearchText: "tip"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Result.Items) != 1 || snap.Result.Items[0].Code != "TIP-12-EG-1" {
		t.Errorf("snapshot = %+v", snap.Result)
	}

	cur, ok := svc.Current()
	if !ok || cur.Generation != snap.Generation {
		t.Errorf("current = %+v, %v", cur, ok)
	}
}

func TestFetch_DropsSupersededResponse(t *testing.T) {
	src := &fakeSource{results: map[string]models.InventoryResult{
		"t":   result("A", "B", "C"),
		"tip": result("A"),
	}}
	svc := NewService(src)

	first := svc.NewRequest(models.FilterCriteria{SearchText: "t"})
	second := svc.NewRequest(models.FilterCriteria{SearchText: "tip"})

	if _, err := svc.Fetch(context.Background(), second); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if _, err := svc.Fetch(context.Background(), first); !errors.Is(err, ErrStale) {
		t.Fatalf("first fetch err = %v, want ErrStale", err)
	}

	cur, _ := svc.Current()
	if len(cur.Result.Items) != 1 {
		t.Errorf("late response overwrote newer snapshot: %+v", cur.Result)
	}
}

func TestFetch_ErrorKeepsPreviousSnapshot(t *testing.T) {
	src := &fakeSource{results: map[string]models.InventoryResult{"": result("A", "B")}}
	svc := NewService(src)

	if _, err := svc.Load(context.Background(), models.FilterCriteria{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	src.err = errors.New("connection refused")
	snap, err := svc.Load(context.Background(), models.FilterCriteria{SearchText: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(snap.Result.Items) != 2 {
		t.Errorf("returned snapshot = %+v, want previous", snap.Result)
	}

	cur, _ := svc.Current()
	if len(cur.Result.Items) != 2 || cur.Criteria.SearchText != "" {
		t.Errorf("current = %+v", cur)
	}
}

func TestLoad_PassesCriteriaThrough(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src)

	criteria := models.FilterCriteria{QRCode: "S01", OrderStatus: status.Requested}
	svc.Load(context.Background(), criteria)

	if len(src.calls) != 1 || src.calls[0] != criteria {
		t.Errorf("calls = %+v", src.calls)
	}
}

func TestOptions_MergesEditShortage(t *testing.T) {
	src := &fakeSource{options: models.FilterOptions{
		OrderStatus:    []string{status.All, status.Requested},
		ShortageStatus: []string{status.All, status.InStock, "discontinued"},
	}}

	opts, err := NewService(src).Options(context.Background())
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	want := []string{status.Shortage, status.Caution, status.InStock, "discontinued"}
	if len(opts.EditShortage) != len(want) {
		t.Fatalf("EditShortage = %v, want %v", opts.EditShortage, want)
	}
	for i := range want {
		if opts.EditShortage[i] != want[i] {
			t.Errorf("EditShortage[%d] = %q, want %q", i, opts.EditShortage[i], want[i])
		}
	}
}
