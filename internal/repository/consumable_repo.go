package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
)

// Consumable is a stored catalog row.
type Consumable struct {
	ID string
	models.Item
	StorageLocation string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Order is a purchase request and its progress.
type Order struct {
	ID                string
	ConsumableID      string
	Status            string
	RequestedQuantity int
	OrderedQuantity   int
	Requester         string
	RequestDate       string
	OrderDate         string
	DueDate           string
	Note              string
	CreatedAt         time.Time
}

// Movement is one stock withdrawal or receipt.
type Movement struct {
	ID           string
	ConsumableID string
	Direction    models.ActionKind // ActionOutbound or ActionInbound
	Quantity     int
	BalanceAfter int
	Person       string
	Department   string
	Note         string
	InboundType  string
	Amount       decimal.Decimal
	MovedAt      time.Time
}

// InboundTypeOrder marks a receipt against an order.
const InboundTypeOrder = "order"

// tsLayout is fixed-width so timestamps sort lexically in UTC.
const tsLayout = "2006-01-02T15:04:05.000000Z07:00"

// detailLimit bounds the nested entries loaded per item.
const detailLimit = 10

const consumableColumns = `
	id, code, order_code, name, category, unit,
	stock_quantity, safety_stock, unit_price, supplier_name,
	storage_location, image_path, note,
	shortage_status, order_status, created_at, updated_at`

// ConsumableRepository handles catalog data access.
type ConsumableRepository struct {
	db *sql.DB
}

// NewConsumableRepository creates a new consumable repository.
func NewConsumableRepository(db *sql.DB) *ConsumableRepository {
	return &ConsumableRepository{db: db}
}

// Create inserts a new consumable.
func (r *ConsumableRepository) Create(ctx context.Context, tx *sql.Tx, c *Consumable) error {
	query := `
		INSERT INTO consumables (` + consumableColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Unit == "" {
		c.Unit = "piece"
	}
	if c.ShortageStatus == "" {
		c.ShortageStatus = status.SuggestShortage(c.StockQuantity, c.SafetyStock)
	}
	if c.OrderStatus == "" {
		c.OrderStatus = status.NotOrdered
	}

	_, err := r.getExecer(tx).ExecContext(ctx, query,
		c.ID,
		c.Code,
		nullableString(c.OrderCode),
		c.Name,
		nullableString(c.Category),
		c.Unit,
		c.StockQuantity,
		c.SafetyStock,
		c.UnitPrice.String(),
		nullableString(c.SupplierName),
		nullableString(c.StorageLocation),
		nullableString(c.ImagePath),
		nullableString(c.Note),
		c.ShortageStatus,
		c.OrderStatus,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting consumable: %w", err)
	}
	return nil
}

// GetByCode retrieves a consumable by code, ignoring case, with its
// order details loaded.
func (r *ConsumableRepository) GetByCode(ctx context.Context, tx *sql.Tx, code string) (*Consumable, error) {
	query := `SELECT ` + consumableColumns + ` FROM consumables WHERE LOWER(code) = LOWER(?)`

	q := r.getQuerier(tx)
	c, err := scanConsumable(q.QueryRowContext(ctx, query, strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, q, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the consumables matching the criteria, ordered by code.
// Empty criteria and the "all" sentinel place no constraint.
func (r *ConsumableRepository) List(ctx context.Context, filter models.FilterCriteria) ([]*Consumable, error) {
	var conditions []string
	var args []any

	filter = filter.Trimmed()
	if filter.QRCode != "" {
		conditions = append(conditions, "LOWER(code) = LOWER(?)")
		args = append(args, filter.QRCode)
	}
	if filter.SearchText != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.SearchText+"%")
	}
	if !status.IsAll(filter.OrderStatus) {
		conditions = append(conditions, "order_status = ?")
		args = append(args, status.Canonical(filter.OrderStatus))
	}
	if !status.IsAll(filter.ShortageStatus) {
		conditions = append(conditions, "shortage_status = ?")
		args = append(args, status.Canonical(filter.ShortageStatus))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM consumables %s ORDER BY code`, consumableColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying consumables: %w", err)
	}
	defer rows.Close()

	var list []*Consumable
	for rows.Next() {
		c, err := scanConsumable(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating consumables: %w", err)
	}

	for _, c := range list {
		if err := r.loadDetails(ctx, r.db, c); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Count returns the size of the whole catalog.
func (r *ConsumableRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM consumables").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting consumables: %w", err)
	}
	return n, nil
}

// AdjustStock adds delta to the stock of a consumable, recomputes its
// shortage status and returns the new stock.
func (r *ConsumableRepository) AdjustStock(ctx context.Context, tx *sql.Tx, c *Consumable, delta int) (int, error) {
	newStock := c.StockQuantity + delta
	if newStock < 0 {
		return c.StockQuantity, fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, c.StockQuantity, -delta)
	}

	shortage := status.SuggestShortage(newStock, c.SafetyStock)
	query := `
		UPDATE consumables
		SET stock_quantity = ?, shortage_status = ?, updated_at = ?
		WHERE id = ?`

	if err := r.execOne(ctx, tx, query, newStock, shortage, time.Now().UTC().Format(time.RFC3339), c.ID); err != nil {
		return c.StockQuantity, fmt.Errorf("updating stock: %w", err)
	}

	c.StockQuantity = newStock
	c.ShortageStatus = shortage
	return newStock, nil
}

// SetOrderStatus changes the order status of a consumable.
func (r *ConsumableRepository) SetOrderStatus(ctx context.Context, tx *sql.Tx, id, orderStatus string) error {
	query := `UPDATE consumables SET order_status = ?, updated_at = ? WHERE id = ?`
	if err := r.execOne(ctx, tx, query, orderStatus, time.Now().UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of u.
func (r *ConsumableRepository) Update(ctx context.Context, tx *sql.Tx, id string, u models.ItemUpdate) error {
	var sets []string
	var args []any

	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Category != nil {
		add("category", nullableString(*u.Category))
	}
	if u.Unit != nil {
		add("unit", *u.Unit)
	}
	if u.StockQuantity != nil {
		add("stock_quantity", *u.StockQuantity)
	}
	if u.SafetyStock != nil {
		add("safety_stock", *u.SafetyStock)
	}
	if u.ShortageStatus != nil {
		add("shortage_status", status.Canonical(*u.ShortageStatus))
	}
	if u.SupplierName != nil {
		add("supplier_name", nullableString(*u.SupplierName))
	}
	if u.Note != nil {
		add("note", nullableString(*u.Note))
	}
	if len(sets) == 0 {
		return nil
	}
	add("updated_at", time.Now().UTC().Format(time.RFC3339))
	args = append(args, id)

	query := fmt.Sprintf("UPDATE consumables SET %s WHERE id = ?", strings.Join(sets, ", "))
	if err := r.execOne(ctx, tx, query, args...); err != nil {
		return fmt.Errorf("updating consumable: %w", err)
	}
	return nil
}

// CreateOrder inserts an order.
func (r *ConsumableRepository) CreateOrder(ctx context.Context, tx *sql.Tx, o *Order) error {
	query := `
		INSERT INTO orders (
			id, consumable_id, status, requested_quantity, ordered_quantity,
			requester, request_date, order_date, due_date, note, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	o.CreatedAt = time.Now().UTC()
	if o.RequestDate == "" {
		o.RequestDate = o.CreatedAt.Format(time.DateOnly)
	}

	var ordered sql.NullInt64
	if o.OrderedQuantity > 0 {
		ordered = sql.NullInt64{Int64: int64(o.OrderedQuantity), Valid: true}
	}

	_, err := r.getExecer(tx).ExecContext(ctx, query,
		o.ID,
		o.ConsumableID,
		o.Status,
		o.RequestedQuantity,
		ordered,
		o.Requester,
		o.RequestDate,
		nullableString(o.OrderDate),
		nullableString(o.DueDate),
		nullableString(o.Note),
		o.CreatedAt.Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// TransitionOrders moves every order of a consumable in state from to
// state to and returns how many changed.
func (r *ConsumableRepository) TransitionOrders(ctx context.Context, tx *sql.Tx, consumableID, from, to string) (int64, error) {
	result, err := r.getExecer(tx).ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE consumable_id = ? AND status = ?`,
		to, consumableID, from,
	)
	if err != nil {
		return 0, fmt.Errorf("updating orders: %w", err)
	}
	return result.RowsAffected()
}

// PlaceOrders marks the open requests of a consumable as ordered and
// returns how many changed.
func (r *ConsumableRepository) PlaceOrders(ctx context.Context, tx *sql.Tx, consumableID, orderDate, dueDate string) (int64, error) {
	query := `
		UPDATE orders
		SET status = ?, order_date = ?, due_date = COALESCE(?, due_date),
			ordered_quantity = requested_quantity
		WHERE consumable_id = ? AND status IN (?, ?)`

	result, err := r.getExecer(tx).ExecContext(ctx, query,
		status.Ordered, orderDate, nullableString(dueDate),
		consumableID, status.Requested, status.Preparing,
	)
	if err != nil {
		return 0, fmt.Errorf("placing orders: %w", err)
	}
	return result.RowsAffected()
}

// CreateMovement records a stock movement.
func (r *ConsumableRepository) CreateMovement(ctx context.Context, tx *sql.Tx, m *Movement) error {
	query := `
		INSERT INTO stock_movements (
			id, consumable_id, direction, quantity, balance_after,
			person, department, note, inbound_type, amount, moved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if m.MovedAt.IsZero() {
		m.MovedAt = time.Now().UTC()
	}

	_, err := r.getExecer(tx).ExecContext(ctx, query,
		m.ID,
		m.ConsumableID,
		string(m.Direction),
		m.Quantity,
		m.BalanceAfter,
		m.Person,
		nullableString(m.Department),
		nullableString(m.Note),
		nullableString(m.InboundType),
		m.Amount.String(),
		m.MovedAt.UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}
	return nil
}

// ListMovements returns the latest movements of a consumable, newest first.
// An empty direction matches both.
func (r *ConsumableRepository) ListMovements(ctx context.Context, consumableID string, direction models.ActionKind, limit int) ([]*Movement, error) {
	conditions := []string{"consumable_id = ?"}
	args := []any{consumableID}
	if direction != "" {
		conditions = append(conditions, "direction = ?")
		args = append(args, string(direction))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, consumable_id, direction, quantity, balance_after,
			person, department, note, inbound_type, amount, moved_at
		FROM stock_movements
		WHERE %s
		ORDER BY moved_at DESC
		LIMIT ?`, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying movements: %w", err)
	}
	defer rows.Close()

	var list []*Movement
	for rows.Next() {
		var m Movement
		var direction, amount, movedAt string
		var department, note, inboundType sql.NullString
		if err := rows.Scan(&m.ID, &m.ConsumableID, &direction, &m.Quantity, &m.BalanceAfter,
			&m.Person, &department, &note, &inboundType, &amount, &movedAt); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		m.Direction = models.ActionKind(direction)
		m.Department = department.String
		m.Note = note.String
		m.InboundType = inboundType.String
		m.Amount, _ = decimal.NewFromString(amount)
		m.MovedAt, _ = time.Parse(tsLayout, movedAt)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// loadDetails fills the nested order panels of c, newest first.
func (r *ConsumableRepository) loadDetails(ctx context.Context, q querier, c *Consumable) error {
	pending, err := q.QueryContext(ctx, `
		SELECT request_date, requester, requested_quantity
		FROM orders
		WHERE consumable_id = ? AND status IN (?, ?)
		ORDER BY request_date DESC, created_at DESC
		LIMIT ?`, c.ID, status.Requested, status.Preparing, detailLimit)
	if err != nil {
		return fmt.Errorf("querying pending orders: %w", err)
	}
	c.PendingOrders = nil
	for pending.Next() {
		var p models.PendingOrder
		if err := pending.Scan(&p.RequestDate, &p.Requester, &p.RequestedQuantity); err != nil {
			pending.Close()
			return fmt.Errorf("scanning pending order: %w", err)
		}
		c.PendingOrders = append(c.PendingOrders, p)
	}
	pending.Close()
	if err := pending.Err(); err != nil {
		return err
	}

	completed, err := q.QueryContext(ctx, `
		SELECT COALESCE(order_date, ''), COALESCE(ordered_quantity, requested_quantity), COALESCE(due_date, '')
		FROM orders
		WHERE consumable_id = ? AND status = ?
		ORDER BY order_date DESC, created_at DESC
		LIMIT ?`, c.ID, status.Ordered, detailLimit)
	if err != nil {
		return fmt.Errorf("querying completed orders: %w", err)
	}
	c.CompletedOrders = nil
	for completed.Next() {
		var o models.CompletedOrder
		if err := completed.Scan(&o.OrderDate, &o.OrderedQuantity, &o.DueDate); err != nil {
			completed.Close()
			return fmt.Errorf("scanning completed order: %w", err)
		}
		c.CompletedOrders = append(c.CompletedOrders, o)
	}
	completed.Close()
	if err := completed.Err(); err != nil {
		return err
	}

	inbound, err := q.QueryContext(ctx, `
		SELECT moved_at, quantity, person
		FROM stock_movements
		WHERE consumable_id = ? AND direction = ? AND inbound_type = ?
		ORDER BY moved_at DESC
		LIMIT ?`, c.ID, string(models.ActionInbound), InboundTypeOrder, detailLimit)
	if err != nil {
		return fmt.Errorf("querying inbound details: %w", err)
	}
	defer inbound.Close()
	c.InboundDetails = nil
	for inbound.Next() {
		var d models.InboundDetail
		var movedAt string
		if err := inbound.Scan(&movedAt, &d.Quantity, &d.Receiver); err != nil {
			return fmt.Errorf("scanning inbound detail: %w", err)
		}
		d.InboundDate = dateOnly(movedAt)
		c.InboundDetails = append(c.InboundDetails, d)
	}
	return inbound.Err()
}

func (r *ConsumableRepository) execOne(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	result, err := r.getExecer(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ConsumableRepository) getExecer(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ConsumableRepository) getQuerier(tx *sql.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func scanConsumable(row scanner) (*Consumable, error) {
	var c Consumable
	var orderCode, category, supplier, location, image, note sql.NullString
	var price, createdStr, updatedStr string

	err := row.Scan(
		&c.ID,
		&c.Code,
		&orderCode,
		&c.Name,
		&category,
		&c.Unit,
		&c.StockQuantity,
		&c.SafetyStock,
		&price,
		&supplier,
		&location,
		&image,
		&note,
		&c.ShortageStatus,
		&c.OrderStatus,
		&createdStr,
		&updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("consumable %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning consumable: %w", err)
	}

	c.OrderCode = orderCode.String
	c.Category = category.String
	c.SupplierName = supplier.String
	c.StorageLocation = location.String
	c.ImagePath = image.String
	c.Note = note.String
	c.UnitPrice, _ = decimal.NewFromString(price)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &c, nil
}

func dateOnly(ts string) string {
	t, err := time.Parse(tsLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format(time.DateOnly)
}
