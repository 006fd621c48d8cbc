// Package dispatch carries an item from the inventory list into the form
// that acts on it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stocktrack/stocktrack/internal/models"
)

// ErrUnknownAction is returned for action kinds without a route.
var ErrUnknownAction = errors.New("unknown action")

// Page names a top-level page.
type Page string

const (
	PageInventory  Page = "inventory"
	PageOperations Page = "operations"
	PageOrder      Page = "order"
)

// Route is the per-kind destination configuration.
type Route struct {
	Page        Page
	Subtab      models.ActionKind // empty when the page has no subtabs
	CodeField   string
	InfoBox     string
	InfoDetails string
	FocusField  string
}

var routes = map[models.ActionKind]Route{
	models.ActionOutbound: {
		Page:        PageOperations,
		Subtab:      models.ActionOutbound,
		CodeField:   "outboundQrCode",
		InfoBox:     "outboundItemInfo",
		InfoDetails: "outboundItemDetails",
		FocusField:  "outboundQuantity",
	},
	models.ActionInbound: {
		Page:        PageOperations,
		Subtab:      models.ActionInbound,
		CodeField:   "inboundQrCode",
		InfoBox:     "inboundItemInfo",
		InfoDetails: "inboundItemDetails",
		FocusField:  "inboundQuantity",
	},
	models.ActionOrder: {
		Page:        PageOrder,
		CodeField:   "orderQrCode",
		InfoBox:     "orderItemInfo",
		InfoDetails: "orderItemDetails",
		FocusField:  "orderQuantity",
	},
}

// RouteFor looks up the route of an action kind.
func RouteFor(kind models.ActionKind) (Route, bool) {
	r, ok := routes[kind]
	return r, ok
}

// Navigator switches pages. Each switch returns a channel that is closed
// once the destination has finished initializing.
type Navigator interface {
	SwitchPage(page Page) <-chan struct{}
	SwitchOperationsSubtab(kind models.ActionKind) <-chan struct{}
}

// Forms seeds destination form fields.
type Forms interface {
	SetCode(field, code string)
	// ShowQuickInfo fills the quick-info container and associates it with
	// the payload's item code.
	ShowQuickInfo(container, details string, p models.ActionPayload)
	FocusSelect(field string)
}

// Dispatcher routes item actions to their forms.
type Dispatcher struct {
	nav          Navigator
	forms        Forms
	readyTimeout time.Duration
}

// New creates a Dispatcher. A non-positive readyTimeout waits on ctx alone.
func New(nav Navigator, forms Forms, readyTimeout time.Duration) *Dispatcher {
	return &Dispatcher{nav: nav, forms: forms, readyTimeout: readyTimeout}
}

// Dispatch navigates to the route of kind and seeds it with p. Seeding
// happens only after the navigator reports the destination ready.
func (d *Dispatcher) Dispatch(ctx context.Context, kind models.ActionKind, p models.ActionPayload) error {
	route, ok := RouteFor(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}

	if d.readyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.readyTimeout)
		defer cancel()
	}

	if err := wait(ctx, d.nav.SwitchPage(route.Page)); err != nil {
		return fmt.Errorf("waiting for page %s: %w", route.Page, err)
	}
	if route.Subtab != "" {
		if err := wait(ctx, d.nav.SwitchOperationsSubtab(route.Subtab)); err != nil {
			return fmt.Errorf("waiting for %s subtab: %w", route.Subtab, err)
		}
	}

	d.forms.SetCode(route.CodeField, p.Code)
	d.forms.ShowQuickInfo(route.InfoBox, route.InfoDetails, p)
	d.forms.FocusSelect(route.FocusField)
	return nil
}

// wait blocks until ready is closed. A nil channel counts as ready.
func wait(ctx context.Context, ready <-chan struct{}) error {
	if ready == nil {
		return nil
	}
	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready returns an already-closed channel, for navigators that switch
// synchronously.
func Ready() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
