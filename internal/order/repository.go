package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cym-store/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o Order) (Order, error)
	CreateLines(ctx context.Context, orderID string, lines []Line) ([]Line, error)
	List(ctx context.Context, status Status) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, customer_id, customer_name, customer_phone, customer_email, total, status, has_custom_items, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var customerID sql.NullString
	err := row.Scan(
		&o.ID,
		&customerID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.Total,
		&o.Status,
		&o.HasCustomItems,
		&o.CreatedAt,
	)
	o.CustomerID = customerID.String
	return o, err
}

// CreateOrder inserts the header. The status is always pending whatever the
// caller put in o.Status.
func (r *repository) CreateOrder(ctx context.Context, o Order) (Order, error) {
	var customerID any
	if o.CustomerID != "" {
		customerID = o.CustomerID
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, customer_name, customer_phone, customer_email, total, status, has_custom_items)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		customerID,
		o.CustomerName,
		o.CustomerPhone,
		o.CustomerEmail,
		o.Total,
		StatusPending,
		o.HasCustomItems,
	)

	return scanOrder(row)
}

// CreateLines writes every line in one transaction: either all lines exist
// afterwards or none do.
func (r *repository) CreateLines(ctx context.Context, orderID string, lines []Line) ([]Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateLines"),
		zap.String("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	saved := make([]Line, 0, len(lines))
	for i, l := range lines {
		var customization any
		if l.Customization != "" {
			customization = l.Customization
		}

		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, price, quantity, customization, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			orderID,
			l.ProductID,
			l.ProductName,
			l.Price,
			l.Quantity,
			customization,
			i,
		).Scan(&id)
		if err != nil {
			log.Error("insert line failed", zap.Int("position", i), zap.Error(err))
			return nil, err
		}

		l.ID = id
		l.OrderID = orderID
		saved = append(saved, l)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *repository) List(ctx context.Context, status Status) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	start := time.Now()

	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if status != "" {
		args = append(args, status)
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		o.Lines = []Line{}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		log.Error("lines query failed", zap.Error(err))
		return nil, err
	}

	for i := range orders {
		if ls, ok := lines[orders[i].ID]; ok {
			orders[i].Lines = ls
		}
	}

	log.Debug("query success",
		zap.Int("orders", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)

	return orders, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.linesFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]
	if o.Lines == nil {
		o.Lines = []Line{}
	}

	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1
		WHERE id = $2
		RETURNING `+orderColumns,
		status, id,
	)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	return o, err
}

// linesFor loads the lines of several orders at once, grouped by order id and
// kept in insertion order.
func (r *repository) linesFor(ctx context.Context, orderIDs []string) (map[string][]Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, price, quantity, customization
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position ASC
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]Line, len(orderIDs))
	for rows.Next() {
		var l Line
		var customization sql.NullString
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Price, &l.Quantity, &customization); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		l.Customization = customization.String
		out[l.OrderID] = append(out[l.OrderID], l)
	}

	return out, rows.Err()
}
