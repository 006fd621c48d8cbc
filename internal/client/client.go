// Package client talks to the inventory API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stocktrack/stocktrack/internal/config"
	"github.com/stocktrack/stocktrack/internal/fields"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/util"
)

// ErrItemNotFound is returned when a code lookup matches nothing.
var ErrItemNotFound = errors.New("item not found")

// TransportError is a network failure, an HTTP error without a JSON body,
// or a response that is not the expected JSON envelope.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is an application-level failure reported by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (HTTP %d)", e.Status)
	}
	return e.Message
}

// Client is an inventory API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client from server configuration.
func New(cfg config.ServerConfig) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout()})
}

// NewWithHTTPClient creates a client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the common response shape. Data is decoded lazily because
// its key spellings vary between backends.
type envelope struct {
	Success  *bool           `json:"success"`
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Filtered any             `json:"filtered"`
	Total    any             `json:"total"`
	NewStock any             `json:"new_stock"`

	OrderStatus    []string `json:"order_status"`
	ShortageStatus []string `json:"shortage_status"`
}

func (e *envelope) ok() bool {
	return e.Success == nil || *e.Success
}

// FilterOptions fetches the selectable status values.
func (c *Client) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	var env envelope
	if err := c.do(ctx, "filter options", http.MethodGet, "/api/filter-options", nil, &env); err != nil {
		return models.FilterOptions{}, err
	}
	return models.FilterOptions{
		OrderStatus:    env.OrderStatus,
		ShortageStatus: env.ShortageStatus,
	}, nil
}

// Inventory runs a filtered query. All four criteria are always sent; an
// empty value is a wildcard and the server decides what matches.
func (c *Client) Inventory(ctx context.Context, criteria models.FilterCriteria) (models.InventoryResult, error) {
	q := url.Values{}
	q.Set("qr_code", criteria.QRCode)
	q.Set("search_text", criteria.SearchText)
	q.Set("order_status", criteria.OrderStatus)
	q.Set("shortage_status", criteria.ShortageStatus)

	var env envelope
	if err := c.do(ctx, "inventory", http.MethodGet, "/api/inventory?"+q.Encode(), nil, &env); err != nil {
		return models.InventoryResult{}, err
	}

	recs, err := decodeRecords(env.Data)
	if err != nil {
		return models.InventoryResult{}, &TransportError{Op: "inventory", Err: err}
	}

	items := fields.NormalizeAll(recs)
	result := models.InventoryResult{
		Items:    items,
		Filtered: fields.ParseInt(env.Filtered),
		Total:    fields.ParseInt(env.Total),
	}
	if env.Filtered == nil {
		result.Filtered = len(items)
	}
	return result, nil
}

// LookupItem returns the first item whose code matches.
func (c *Client) LookupItem(ctx context.Context, code string) (models.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Item{}, ErrItemNotFound
	}

	result, err := c.Inventory(ctx, models.FilterCriteria{QRCode: code})
	if err != nil {
		return models.Item{}, fmt.Errorf("looking up %s: %w", code, err)
	}
	if len(result.Items) == 0 {
		return models.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, code)
	}
	return result.Items[0], nil
}

// Outbound withdraws stock and returns the new stock level.
func (c *Client) Outbound(ctx context.Context, req models.MovementRequest) (int, error) {
	return c.movement(ctx, "outbound", "/api/outbound", req)
}

// Inbound restocks and returns the new stock level.
func (c *Client) Inbound(ctx context.Context, req models.MovementRequest) (int, error) {
	return c.movement(ctx, "inbound", "/api/inbound", req)
}

func (c *Client) movement(ctx context.Context, op, path string, req models.MovementRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("invalid %s request: %w", op, err)
	}

	var env envelope
	if err := c.do(ctx, op, http.MethodPost, path, req, &env); err != nil {
		return 0, err
	}
	return fields.ParseInt(env.NewStock), nil
}

// RequestOrder files an order request.
func (c *Client) RequestOrder(ctx context.Context, req models.OrderRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid order request: %w", err)
	}

	var env envelope
	return c.do(ctx, "order", http.MethodPost, "/api/order", req, &env)
}

// UpdateItem applies an edit to the item with the given code.
func (c *Client) UpdateItem(ctx context.Context, code string, update models.ItemUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	if err := update.Validate(); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}

	var env envelope
	return c.do(ctx, "update item", http.MethodPut, "/api/consumables/"+url.PathEscape(code), update, &env)
}

// do sends a request and decodes the JSON envelope into out.
func (c *Client) do(ctx context.Context, op, method, path string, body any, out *envelope) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", util.NewRequestID())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode >= 300 {
			return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if resp.StatusCode >= 300 || !out.ok() {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	return nil
}

// decodeRecords decodes the data array, keeping numbers as json.Number so
// quantity parsing sees the original text.
func decodeRecords(raw json.RawMessage) ([]map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var arr []any
	if err := dec.Decode(&arr); err != nil {
		return nil, fmt.Errorf("decoding data: %w", err)
	}

	recs := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			recs = append(recs, m)
		}
	}
	return recs, nil
}
