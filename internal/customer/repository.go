package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cym-store/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	FindByPhoneOrEmail(ctx context.Context, phone, email string) (*Customer, error)
	Create(ctx context.Context, name, phone, email string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// FindByPhoneOrEmail returns the oldest customer matching either key, or nil.
func (r *repository) FindByPhoneOrEmail(ctx context.Context, phone, email string) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, created_at
		FROM customers
		WHERE ($1 <> '' AND phone = $1) OR ($2 <> '' AND email = $2)
		ORDER BY created_at ASC
		LIMIT 1
	`, phone, email).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.OrderIDs = []string{}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, name, phone, email string) (Customer, error) {
	c := Customer{OrderIDs: []string{}}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, phone, email)
		VALUES ($1, $2, $3)
		RETURNING id, name, phone, email, created_at
	`, name, phone, email).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)

	return c, err
}

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCustomers"),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.name, c.phone, c.email, c.created_at,
			ARRAY(
				SELECT o.id::text FROM orders o
				WHERE o.customer_id = c.id
				ORDER BY o.created_at ASC
			) AS order_ids
		FROM customers c
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, pq.Array(&c.OrderIDs)); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		if c.OrderIDs == nil {
			c.OrderIDs = []string{}
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(customers)),
		zap.Duration("duration", time.Since(start)),
	)

	return customers, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}
