// Package stock implements the catalog operations of the development
// backend: filtered listing, stock movements, order requests and edits.
package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/database"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/repository"
	"github.com/stocktrack/stocktrack/internal/status"
	"github.com/stocktrack/stocktrack/internal/util"
)

// Service provides catalog operations.
type Service struct {
	db          *database.DB
	consumables *repository.ConsumableRepository
	idGenerator *util.IDGenerator
}

// NewService creates a new stock service.
func NewService(db *database.DB) *Service {
	return &Service{
		db:          db,
		consumables: repository.NewConsumableRepository(db.DB),
		idGenerator: util.NewIDGenerator(),
	}
}

// Ping reports whether the catalog database answers.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Listing is a filtered catalog page.
type Listing struct {
	Items    []*repository.Consumable
	Filtered int
	Total    int
}

// Inventory lists the consumables matching filter. Total counts the whole
// catalog.
func (s *Service) Inventory(ctx context.Context, filter models.FilterCriteria) (*Listing, error) {
	items, err := s.consumables.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing consumables: %w", err)
	}

	total, err := s.consumables.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Listing{Items: items, Filtered: len(items), Total: total}, nil
}

// CreateConsumable adds a catalog entry. An empty shortage status is
// derived from the quantities.
func (s *Service) CreateConsumable(ctx context.Context, input CreateConsumableInput) (*repository.Consumable, error) {
	c := &repository.Consumable{
		ID: s.idGenerator.NewID(),
		Item: models.Item{
			Code:           strings.TrimSpace(input.Code),
			OrderCode:      input.OrderCode,
			Name:           input.Name,
			Category:       input.Category,
			Unit:           input.Unit,
			StockQuantity:  input.StockQuantity,
			SafetyStock:    input.SafetyStock,
			UnitPrice:      input.UnitPrice,
			SupplierName:   input.SupplierName,
			ImagePath:      input.ImagePath,
			Note:           input.Note,
			ShortageStatus: status.Canonical(input.ShortageStatus),
			OrderStatus:    status.Canonical(input.OrderStatus),
		},
		StorageLocation: input.StorageLocation,
	}
	if c.Code == "" || strings.TrimSpace(c.Name) == "" {
		return nil, errors.New("code and name are required")
	}

	if err := s.consumables.Create(ctx, nil, c); err != nil {
		return nil, fmt.Errorf("creating consumable: %w", err)
	}
	return c, nil
}

// Outbound withdraws stock and returns the new level.
func (s *Service) Outbound(ctx context.Context, req models.MovementRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.move(ctx, req, models.ActionOutbound)
}

// Inbound restocks and returns the new level. A receipt against an order
// marks the item's placed orders, and the item itself, as received.
func (s *Service) Inbound(ctx context.Context, req models.MovementRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.move(ctx, req, models.ActionInbound)
}

func (s *Service) move(ctx context.Context, req models.MovementRequest, direction models.ActionKind) (int, error) {
	var newStock int

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		c, err := s.consumables.GetByCode(ctx, tx, req.Code)
		if err != nil {
			return err
		}

		delta := req.Quantity
		if direction == models.ActionOutbound {
			delta = -delta
		}
		newStock, err = s.consumables.AdjustStock(ctx, tx, c, delta)
		if err != nil {
			return err
		}

		m := &repository.Movement{
			ID:           s.idGenerator.NewID(),
			ConsumableID: c.ID,
			Direction:    direction,
			Quantity:     req.Quantity,
			BalanceAfter: newStock,
			Person:       req.Person,
			Department:   req.Department,
			Note:         req.Note,
			Amount:       c.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		if direction == models.ActionInbound {
			m.InboundType = strings.TrimSpace(req.InboundType)
		}
		if err := s.consumables.CreateMovement(ctx, tx, m); err != nil {
			return fmt.Errorf("recording movement: %w", err)
		}

		if m.InboundType == repository.InboundTypeOrder {
			if _, err := s.consumables.TransitionOrders(ctx, tx, c.ID, status.Ordered, status.Received); err != nil {
				return err
			}
			if err := s.consumables.SetOrderStatus(ctx, tx, c.ID, status.Received); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", direction, req.Code, err)
	}

	return newStock, nil
}

// RequestOrder files an order request and marks the item as requested.
func (s *Service) RequestOrder(ctx context.Context, req models.OrderRequest) (*repository.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var order *repository.Order
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		c, err := s.consumables.GetByCode(ctx, tx, req.Code)
		if err != nil {
			return err
		}

		order = &repository.Order{
			ID:                s.idGenerator.NewID(),
			ConsumableID:      c.ID,
			Status:            status.Requested,
			RequestedQuantity: req.Quantity,
			Requester:         req.Requester,
			DueDate:           req.Deadline,
			Note:              req.Note,
		}
		if err := s.consumables.CreateOrder(ctx, tx, order); err != nil {
			return err
		}
		return s.consumables.SetOrderStatus(ctx, tx, c.ID, status.Requested)
	})
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", req.Code, err)
	}

	return order, nil
}

// PlaceOrder turns the open requests of an item into a placed order due
// on dueDate. It returns how many requests were placed.
func (s *Service) PlaceOrder(ctx context.Context, code, dueDate string) (int64, error) {
	var placed int64
	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		c, err := s.consumables.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}

		placed, err = s.consumables.PlaceOrders(ctx, tx, c.ID, time.Now().Format(time.DateOnly), dueDate)
		if err != nil {
			return err
		}
		if placed == 0 {
			return fmt.Errorf("no open requests for %s", code)
		}
		return s.consumables.SetOrderStatus(ctx, tx, c.ID, status.Ordered)
	})
	if err != nil {
		return 0, fmt.Errorf("placing order %s: %w", code, err)
	}
	return placed, nil
}

// UpdateItem applies an edit. A quantity change without an explicit
// shortage status re-derives it.
func (s *Service) UpdateItem(ctx context.Context, code string, u models.ItemUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		c, err := s.consumables.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}

		if u.ShortageStatus == nil && (u.StockQuantity != nil || u.SafetyStock != nil) {
			stock, safety := c.StockQuantity, c.SafetyStock
			if u.StockQuantity != nil {
				stock = *u.StockQuantity
			}
			if u.SafetyStock != nil {
				safety = *u.SafetyStock
			}
			derived := status.SuggestShortage(stock, safety)
			u.ShortageStatus = &derived
		}

		if err := s.consumables.Update(ctx, tx, c.ID, u); err != nil {
			return fmt.Errorf("updating %s: %w", code, err)
		}
		return nil
	})
}

// Movements returns the latest stock movements of an item.
func (s *Service) Movements(ctx context.Context, code string, limit int) ([]*repository.Movement, error) {
	c, err := s.consumables.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, err
	}
	return s.consumables.ListMovements(ctx, c.ID, "", limit)
}
