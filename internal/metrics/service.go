package metrics

import (
	"context"
	"errors"
	"fmt"

	"cym-store/internal/logger"

	"go.uber.org/zap"
)

var ErrFailedLoadStats = errors.New("failed to load dashboard stats")

type Stats struct {
	Snapshot
	OrdersPlacedSinceStart  uint64 `json:"orders_placed_since_start"`
	OrdersFailedSinceStart  uint64 `json:"orders_failed_since_start"`
	PartialOrdersSinceStart uint64 `json:"partial_orders_since_start"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo     Repository
	checkout *Checkout
}

func NewService(repo Repository, checkout *Checkout) Service {
	if checkout == nil {
		checkout = &Checkout{}
	}
	return &service{repo: repo, checkout: checkout}
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	timer := StartTimer()

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load snapshot",
			zap.String("layer", "service"),
			zap.String("method", "Stats"),
			zap.Error(err),
		)
		return Stats{}, fmt.Errorf("%w: %w", ErrFailedLoadStats, err)
	}

	logger.FromCtx(ctx).Debug("stats loaded", zap.Duration("duration", timer.Duration()))

	return Stats{
		Snapshot:                snap,
		OrdersPlacedSinceStart:  s.checkout.OrdersPlaced.Load(),
		OrdersFailedSinceStart:  s.checkout.OrdersFailed.Load(),
		PartialOrdersSinceStart: s.checkout.PartialOrders.Load(),
	}, nil
}
