package cart

import (
	"context"

	"cym-store/internal/logger"
	"cym-store/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the local cart store. Each mutation is a read-modify-write of the
// full snapshot. It trusts its caller for quantity and stock checks.
type Service interface {
	AddItem(ctx context.Context, p product.Product, quantity int, customization string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	RemoveLine(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	Items(ctx context.Context) ([]CartItem, error)
	Total(ctx context.Context) (decimal.Decimal, error)
	HasCustomLines(ctx context.Context) (bool, error)
	Summary(ctx context.Context) (Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddItem appends a customized line unconditionally. A plain line is merged
// into the first plain line of the same product, otherwise appended.
func (s *service) AddItem(ctx context.Context, p product.Product, quantity int, customization string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("product_id", p.ID),
		zap.Int("quantity", quantity),
	)

	items, err := s.repo.Load(ctx)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return err
	}

	if customization != "" {
		items = append(items, CartItem{Product: p, Quantity: quantity, Customization: customization})
	} else if idx := indexOfPlainLine(items, p.ID); idx >= 0 {
		items[idx].Quantity += quantity
	} else {
		items = append(items, CartItem{Product: p, Quantity: quantity})
	}

	if err := s.repo.Save(ctx, items); err != nil {
		log.Error("failed to save cart", zap.Error(err))
		return err
	}

	log.Debug("item added", zap.Bool("customized", customization != ""), zap.Int("lines", len(items)))
	return nil
}

// SetQuantity changes the first line of the product, customized or not.
// Quantities below one are ignored.
func (s *service) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity = quantity
			return s.repo.Save(ctx, items)
		}
	}

	return nil
}

// RemoveLine drops every line of the product, including customized ones.
func (s *service) RemoveLine(ctx context.Context, productID string) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}

	return s.repo.Save(ctx, kept)
}

func (s *service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart", zap.String("layer", "service"), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Items(ctx context.Context) ([]CartItem, error) {
	return s.repo.Load(ctx)
}

func (s *service) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(items), nil
}

func (s *service) HasCustomLines(ctx context.Context) (bool, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	return HasCustomLines(items), nil
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(items), nil
}

func indexOfPlainLine(items []CartItem, productID string) int {
	for i, it := range items {
		if it.ID == productID && !it.IsCustomized() {
			return i
		}
	}
	return -1
}
