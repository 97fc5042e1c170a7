package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus accepts any letter case. An empty string is an error.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Order is the header. Customer fields are copied at order time and never
// follow later edits of the customer record.
type Order struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
	CustomerEmail  string          `json:"customer_email"`
	Total          decimal.Decimal `json:"total"`
	Status         Status          `json:"status"`
	HasCustomItems bool            `json:"has_custom_items"`
	CreatedAt      time.Time       `json:"created_at"`
	Lines          []Line          `json:"items,omitempty"`
}

// Line is immutable once written. Name and price are what the cart held at
// checkout, not a join to the live catalog.
type Line struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Customization string          `json:"customization,omitempty"`
}
