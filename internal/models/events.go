package models

import "time"

// Event types
const (
	EventTypeOrder       = "order"
	EventTypeStock       = "stock"
	EventTypeClickstream = "clickstream"
)

// Stream names
const (
	StreamOrders      = "orders"
	StreamStock       = "stock"
	StreamClickstream = "clickstream"
)

// Clickstream actions
const (
	ActionViewPage      = "view_page"
	ActionAddToCart     = "add_to_cart"
	ActionCheckoutStart = "checkout_start"
)

// ClickstreamActions lists the generated action kinds.
var ClickstreamActions = []string{ActionViewPage, ActionAddToCart, ActionCheckoutStart}

// Event is implemented by every generated event kind.
type Event interface {
	Kind() string
	ID() string
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) Kind() string { return e.EventType }
func (e BaseEvent) ID() string   { return e.EventID }

// OrderItem is one line of an order, priced at generation time.
type OrderItem struct {
	ListingSK int64   `json:"seller_product_sk"`
	SellerID  string  `json:"seller_id"`
	ProductID string  `json:"product_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// OrderEvent references one customer and 1-5 distinct listings.
type OrderEvent struct {
	BaseEvent
	OrderID     string      `json:"order_id"`
	CustomerSK  int64       `json:"customer_sk"`
	CustomerID  string      `json:"customer_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Currency    string      `json:"currency"`
	Status      string      `json:"status"`
}

// StockEvent is a point-in-time stock level for one listing.
type StockEvent struct {
	BaseEvent
	ListingSK int64  `json:"seller_product_sk"`
	Stock     int    `json:"stock"`
	Source    string `json:"source"`
}

// ClickstreamEvent is a browsing action with fresh session and user
// tokens; only view_page actions reference a pooled product via the URL.
type ClickstreamEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	URL       string `json:"url"`
	Action    string `json:"action"`
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
}
