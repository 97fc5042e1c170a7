package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"cym-store/internal/storage"
)

// SlotKey is the storage slot holding the JSON-serialized cart.
const SlotKey = "cym_cart"

// Repository reads and writes the whole cart snapshot. There is no cache:
// every Load goes back to the store.
type Repository interface {
	Load(ctx context.Context) ([]CartItem, error)
	Save(ctx context.Context, items []CartItem) error
	Clear(ctx context.Context) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context) ([]CartItem, error) {
	raw, ok, err := r.store.Get(ctx, SlotKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCart, err)
	}
	if !ok || raw == "" {
		return []CartItem{}, nil
	}

	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %w", ErrFailedLoadCart, err)
	}
	if items == nil {
		items = []CartItem{}
	}

	return items, nil
}

func (r *repository) Save(ctx context.Context, items []CartItem) error {
	if items == nil {
		items = []CartItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %w", ErrFailedSaveCart, err)
	}

	if err := r.store.Set(ctx, SlotKey, string(raw)); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedSaveCart, err)
	}
	return nil
}

func (r *repository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, SlotKey); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedClearCart, err)
	}
	return nil
}
