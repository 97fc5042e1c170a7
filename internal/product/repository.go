package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cym-store/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (Product, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, images, category, stock, customizable, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		pq.Array(&p.Images),
		&p.Category,
		&p.Stock,
		&p.Customizable,
		&p.CreatedAt,
	)
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, err
}

// likeEscaper makes a search term match literally under ILIKE, whose default
// escape character is the backslash.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	// ---------- where ----------
	var where []string
	var args []any

	if opts.Category != "" && opts.Category != AllCategories {
		args = append(args, opts.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
		log = log.With(zap.String("filter_category", opts.Category))
	}

	if search := strings.TrimSpace(opts.Search); search != "" {
		args = append(args, "%"+likeEscaper.Replace(search)+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
		log = log.With(zap.String("filter_search", search))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (Product, error) {
	images := input.Images
	if images == nil {
		images = []string{}
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, images, category, stock, customizable)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		input.Name,
		input.Description,
		input.Price,
		pq.Array(images),
		input.Category,
		input.Stock,
		input.Customizable,
	)

	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, id string, input UpdateProductInput) (Product, error) {
	var set []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.Images != nil {
		images := *input.Images
		if images == nil {
			images = []string{}
		}
		add("images", pq.Array(images))
	}
	if input.Category != nil {
		add("category", *input.Category)
	}
	if input.Stock != nil {
		add("stock", *input.Stock)
	}
	if input.Customizable != nil {
		add("customizable", *input.Customizable)
	}

	if len(set) == 0 {
		return Product{}, ErrNoFieldsToUpdate
	}

	args = append(args, id)
	query := `UPDATE products SET ` + strings.Join(set, ", ") +
		fmt.Sprintf(` WHERE id = $%d RETURNING `, len(args)) + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM products
		WHERE category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
