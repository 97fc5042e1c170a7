package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cym-store/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the catalog accessor. Remote failures are logged here and
// returned wrapped in one of the ErrFailed* sentinels; nothing is retried.
type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (Product, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	SeedDemo(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedListProducts, err)
	}

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidProductID
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("layer", "service"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedGetProduct, err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	return p, nil
}

func (s *service) Create(ctx context.Context, input NewProductInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if err := input.Validate(); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return Product{}, err
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return Product{}, fmt.Errorf("%w: %w", ErrFailedCreateProduct, err)
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id),
	)

	if strings.TrimSpace(id) == "" {
		return Product{}, ErrInvalidProductID
	}
	if err := input.Validate(); err != nil {
		log.Warn("invalid product update", zap.Error(err))
		return Product{}, err
	}

	p, err := s.repo.Update(ctx, id, input)
	if errors.Is(err, ErrProductNotFound) {
		return Product{}, err
	}
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return Product{}, fmt.Errorf("%w: %w", ErrFailedUpdateProduct, err)
	}

	log.Info("product updated")
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidProductID
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return err
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.String("layer", "service"),
			zap.String("product_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrFailedDeleteProduct, err)
	}

	return nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list categories",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedListProducts, err)
	}
	return categories, nil
}

// SeedDemo fills an empty catalog with the demo collection and reports how
// many products were inserted.
func (s *service) SeedDemo(ctx context.Context) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SeedDemo"),
	)

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedListProducts, err)
	}
	if n > 0 {
		log.Debug("catalog not empty, skipping seed", zap.Int("count", n))
		return 0, nil
	}

	inserted := 0
	for _, in := range demoProducts() {
		if _, err := s.repo.Create(ctx, in); err != nil {
			log.Error("failed to seed product", zap.String("name", in.Name), zap.Error(err))
			return inserted, fmt.Errorf("%w: %w", ErrFailedCreateProduct, err)
		}
		inserted++
	}

	log.Info("demo catalog seeded", zap.Int("count", inserted))
	return inserted, nil
}

func demoProducts() []NewProductInput {
	return []NewProductInput{
		{
			Name:        "Miroir Élégance Dorée",
			Description: "Miroir luxueux avec cadre doré finement travaillé. Parfait pour votre salon ou chambre.",
			Price:       decimal.NewFromInt(2500),
			Images:      []string{"/images/mirror1.jpg"},
			Category:    "Premium",
			Stock:       10,
		},
		{
			Name:        "Miroir Moderne Minimaliste",
			Description: "Design épuré et élégant, idéal pour les intérieurs contemporains.",
			Price:       decimal.NewFromInt(1800),
			Images:      []string{"/images/mirror2.jpg"},
			Category:    "Moderne",
			Stock:       15,
		},
		{
			Name:        "Miroir Vintage Classique",
			Description: "Un chef-d'œuvre intemporel avec des détails ornementaux exquis.",
			Price:       decimal.NewFromInt(3200),
			Images:      []string{"/images/mirror3.jpg"},
			Category:    "Vintage",
			Stock:       5,
		},
	}
}
