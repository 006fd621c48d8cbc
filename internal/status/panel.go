package status

// Panel identifies the order-detail panel shown on an item card.
type Panel int

const (
	PanelNone Panel = iota
	PanelPending
	PanelCompleted
	PanelInbound
)

func (p Panel) String() string {
	switch p {
	case PanelPending:
		return "pending"
	case PanelCompleted:
		return "completed"
	case PanelInbound:
		return "inbound"
	default:
		return "none"
	}
}

// PanelFor returns the panel gated by an order status. The status alone
// decides; whether the matching entries are non-empty is the caller's
// concern.
func PanelFor(orderStatus string) Panel {
	switch Canonical(orderStatus) {
	case Requested, Preparing:
		return PanelPending
	case Ordered:
		return PanelCompleted
	case Received:
		return PanelInbound
	case NotOrdered, Unknown:
		return PanelNone
	default:
		return PanelNone
	}
}
