package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
)

var funcs = template.FuncMap{
	"text":  Text,
	"count": CountLabel,
	"actions": func() []models.ActionKind {
		return models.ActionKinds()
	},
	"actionLabel": ActionLabel,
	"isPending":   func(p status.Panel) bool { return p == status.PanelPending },
	"isCompleted": func(p status.Panel) bool { return p == status.PanelCompleted },
	"isInbound":   func(p status.Panel) bool { return p == status.PanelInbound },
}

// Interpolated values go through html/template's contextual escaping, so
// data-* attributes stay inert whatever the item contains.
var pageTemplate = template.Must(template.New("inventory").Funcs(funcs).Parse(`<div class="inventory-count">{{count .Filtered .Total}}</div>
<div class="inventory-list">
{{- if not .Cards}}
  <div class="empty-state">
    <h3>{{.EmptyTitle}}</h3>
    <p>{{.EmptyHint}}</p>
  </div>
{{- end}}
{{- range .Cards}}
  <div class="inventory-card">
    <img src="{{.ImageURL}}" alt="{{.Name}}" class="card-image" loading="lazy">
    <div class="card-info">
      <div class="item-name">{{text .Name}}</div>
      <div class="item-code">Code: {{text .Code}}</div>
      <div class="card-meta-row"><span>Order code: {{text .OrderCode}}</span><span>Category: {{text .Category}}</span></div>
      <div class="card-meta-row"><span>Stock: <strong>{{.Stock}}</strong> {{.Unit}}</span><span>Safety stock: {{.Safety}} {{.Unit}}</span></div>
      <div class="card-meta-row"><span>Supplier: {{text .Supplier}}</span></div>
      <div class="status-row">
        <span class="status-pill {{.ShortageClass}}">Shortage: {{.ShortageStatus}}</span>
        <span class="status-pill {{.OrderClass}}">Order: {{.OrderStatus}}</span>
      </div>
      {{- $unit := .Unit}}
      {{- if and (isPending .Panel) .Pending}}
      <div class="order-details-section pending-section">
        <div class="order-details-title">Pending requests (latest {{len .Pending}})</div>
        {{- range .Pending}}
        <div class="order-detail-item"><span>Requested: {{text .RequestDate}}</span><span>By: {{text .Requester}}</span><span>Qty: <strong>{{.RequestedQuantity}}</strong> {{$unit}}</span></div>
        {{- end}}
      </div>
      {{- end}}
      {{- if and (isCompleted .Panel) .Completed}}
      <div class="order-details-section completed-order-section">
        <div class="order-details-title">Placed orders (latest {{len .Completed}})</div>
        {{- range .Completed}}
        <div class="order-detail-item"><span>Ordered: {{text .OrderDate}}</span><span>Qty: <strong>{{.OrderedQuantity}}</strong> {{$unit}}</span><span>Due: {{text .DueDate}}</span></div>
        {{- end}}
      </div>
      {{- end}}
      {{- if and (isInbound .Panel) .Inbound}}
      <div class="order-details-section inbound-details-section">
        <div class="order-details-title">Receipts (latest {{len .Inbound}})</div>
        {{- range .Inbound}}
        <div class="order-detail-item"><span>Received: {{text .InboundDate}}</span><span>Qty: <strong>{{.Quantity}}</strong> {{$unit}}</span><span>By: {{text .Receiver}}</span></div>
        {{- end}}
      </div>
      {{- end}}
    </div>
    <div class="card-actions">
      {{- $p := .Payload}}
      {{- range actions}}
      <button class="action-btn action-{{.}}" data-action="{{.}}" data-code="{{$p.Code}}" data-name="{{$p.Name}}" data-stock="{{$p.Stock}}" data-safety="{{$p.Safety}}" data-unit="{{$p.Unit}}" data-supplier="{{$p.Supplier}}">{{actionLabel .}}</button>
      {{- end}}
    </div>
  </div>
{{- end}}
</div>
`))

type pageData struct {
	Cards      []Card
	Filtered   int
	Total      int
	EmptyTitle string
	EmptyHint  string
}

// HTML writes the inventory markup for a filtered result.
func HTML(w io.Writer, result models.InventoryResult) error {
	data := pageData{
		Cards:      BuildCards(result.Items),
		Filtered:   result.Filtered,
		Total:      result.Total,
		EmptyTitle: EmptyTitle,
		EmptyHint:  EmptyHint,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering inventory markup: %w", err)
	}
	return nil
}

// ActionLabel is the button caption for an action kind.
func ActionLabel(kind models.ActionKind) string {
	switch kind {
	case models.ActionOutbound:
		return "Outbound"
	case models.ActionInbound:
		return "Inbound"
	case models.ActionOrder:
		return "Request order"
	default:
		return string(kind)
	}
}
