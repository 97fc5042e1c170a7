package events

import "github.com/shopspring/decimal"

const (
	OrderPlacedEvent   = "order.placed"
	OrderPlacedVersion = 1
)

type OrderPlaced struct {
	OrderID        string            `json:"orderId"`
	CustomerID     string            `json:"customerId"`
	CustomerName   string            `json:"customerName"`
	CustomerPhone  string            `json:"customerPhone"`
	CustomerEmail  string            `json:"customerEmail"`
	Total          decimal.Decimal   `json:"total"`
	HasCustomItems bool              `json:"hasCustomItems"`
	Lines          []OrderPlacedLine `json:"lines"`
}

type OrderPlacedLine struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Customization string          `json:"customization,omitempty"`
}
