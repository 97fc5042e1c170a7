package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cym-store/internal/cart"
	"cym-store/internal/customer"
	"cym-store/internal/events"
	"cym-store/internal/logger"
	"cym-store/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, name, phone, email string, items []cart.CartItem) (*Order, error)
	List(ctx context.Context, status string) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
}

type service struct {
	repo      Repository
	customers customer.Service
	publisher events.Publisher
	counters  *metrics.Checkout
}

func NewService(
	repo Repository,
	customers customer.Service,
	publisher events.Publisher,
	counters *metrics.Checkout,
) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if counters == nil {
		counters = &metrics.Checkout{}
	}
	return &service{
		repo:      repo,
		customers: customers,
		publisher: publisher,
		counters:  counters,
	}
}

// PlaceOrder resolves the customer, writes the header and then the lines.
// The steps are not one transaction: a customer may be left without an order,
// and a header may be left without lines when the second write fails. The
// returned order carries no lines.
func (s *service) PlaceOrder(ctx context.Context, name, phone, email string, items []cart.CartItem) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	timer := metrics.StartTimer()

	// 1. totals, same rule as the cart
	total := cart.Total(items)
	hasCustom := cart.HasCustomLines(items)

	// 2. customer
	customerID, err := s.customers.FindOrCreate(ctx, name, phone, email)
	if err != nil {
		s.counters.OrdersFailed.Inc()
		log.Error("customer resolution failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedResolveCustomer, err)
	}

	// 3. header
	header, err := s.repo.CreateOrder(ctx, Order{
		CustomerID:     customerID,
		CustomerName:   name,
		CustomerPhone:  phone,
		CustomerEmail:  email,
		Total:          total,
		Status:         StatusPending,
		HasCustomItems: hasCustom,
	})
	if err != nil {
		s.counters.OrdersFailed.Inc()
		log.Error("order header insert failed", zap.String("customer_id", customerID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedCreateOrder, err)
	}

	log = log.With(zap.String("order_id", header.ID))

	// 4. line snapshots
	lines, err := s.repo.CreateLines(ctx, header.ID, linesFromCart(items))
	if err != nil {
		s.counters.OrdersFailed.Inc()
		s.counters.PartialOrders.Inc()
		log.Error("order lines insert failed, order left without lines", zap.Error(err))
		return nil, fmt.Errorf("%w: order %s: %w", ErrFailedCreateLines, header.ID, err)
	}

	s.counters.OrdersPlaced.Inc()

	if err := s.publisher.PublishOrderPlaced(ctx, toOrderPlaced(header, lines)); err != nil {
		log.Warn("order placed event not published", zap.Error(err))
	}

	log.Info("order placed",
		zap.String("total", header.Total.String()),
		zap.Bool("has_custom_items", header.HasCustomItems),
		zap.Int("lines", len(lines)),
		zap.Duration("duration", timer.Duration()),
	)

	header.Lines = nil
	return &header, nil
}

// List returns orders newest first with their lines. An empty status lists
// every order.
func (s *service) List(ctx context.Context, status string) ([]Order, error) {
	var filter Status
	if strings.TrimSpace(status) != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders",
			zap.String("layer", "service"),
			zap.String("status", string(filter)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedListOrders, err)
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidOrderID
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "service"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedGetOrder, err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// UpdateStatus is the only mutation allowed on a placed order. Any status may
// follow any other.
func (s *service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
	)

	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidOrderID
	}
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.UpdateStatus(ctx, id, next)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, err
	}
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedUpdateStatus, err)
	}

	log.Info("order status updated", zap.String("status", string(next)))
	return &o, nil
}
