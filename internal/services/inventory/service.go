// Package inventory runs filtered catalog queries and owns the snapshot the
// inventory page displays.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
)

// ErrStale is returned for a response superseded by a newer request.
var ErrStale = errors.New("stale inventory response")

// Source answers catalog queries. The backend is authoritative: results
// are never filtered locally.
type Source interface {
	Inventory(ctx context.Context, criteria models.FilterCriteria) (models.InventoryResult, error)
	FilterOptions(ctx context.Context) (models.FilterOptions, error)
}

// Request is one issued query.
type Request struct {
	Generation uint64
	Criteria   models.FilterCriteria
}

// Snapshot is a committed query result.
type Snapshot struct {
	Generation uint64
	Criteria   models.FilterCriteria
	Result     models.InventoryResult
}

// Options are the selector choices for the inventory and edit pages.
type Options struct {
	OrderStatus    []string
	ShortageStatus []string
	// EditShortage excludes the "all" sentinel and always includes the
	// default shortage labels.
	EditShortage []string
}

// Service issues queries and keeps the latest committed snapshot.
type Service struct {
	src Source

	mu      sync.Mutex
	latest  uint64
	current Snapshot
	loaded  bool
}

// NewService creates a service reading from src.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// NewRequest issues a request generation. Only the most recently issued
// request can commit its result.
func (s *Service) NewRequest(criteria models.FilterCriteria) Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	return Request{Generation: s.latest, Criteria: criteria}
}

// Fetch runs req. On failure the previous snapshot stays current.
func (s *Service) Fetch(ctx context.Context, req Request) (Snapshot, error) {
	result, err := s.src.Inventory(ctx, req.Criteria)

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Generation != s.latest {
		slog.Debug("dropping superseded inventory response",
			"generation", req.Generation, "latest", s.latest)
		return Snapshot{}, ErrStale
	}
	if err != nil {
		return s.current, fmt.Errorf("loading inventory: %w", err)
	}

	s.current = Snapshot{Generation: req.Generation, Criteria: req.Criteria, Result: result}
	s.loaded = true
	return s.current, nil
}

// Load issues and runs a request in one step.
func (s *Service) Load(ctx context.Context, criteria models.FilterCriteria) (Snapshot, error) {
	return s.Fetch(ctx, s.NewRequest(criteria))
}

// Current returns the committed snapshot and whether one exists.
func (s *Service) Current() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.loaded
}

// Options fetches selector choices.
func (s *Service) Options(ctx context.Context) (Options, error) {
	opts, err := s.src.FilterOptions(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("loading filter options: %w", err)
	}

	return Options{
		OrderStatus:    opts.OrderStatus,
		ShortageStatus: opts.ShortageStatus,
		EditShortage:   status.MergeShortageOptions(opts.ShortageStatus),
	}, nil
}
