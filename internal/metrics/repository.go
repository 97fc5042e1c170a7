package metrics

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// Snapshot holds the dashboard totals read from the store.
type Snapshot struct {
	Products  int             `json:"products"`
	Orders    int             `json:"orders"`
	Customers int             `json:"customers"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Repository interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM customers),
			(SELECT COALESCE(SUM(total), 0) FROM orders)
	`).Scan(&s.Products, &s.Orders, &s.Customers, &s.Revenue)

	return s, err
}
