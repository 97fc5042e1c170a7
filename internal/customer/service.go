package customer

import (
	"context"
	"fmt"
	"strings"

	"cym-store/internal/logger"

	"go.uber.org/zap"
)

// Service deduplicates customers by phone or email. The lookup and the insert
// are separate statements, so two concurrent checkouts for a new contact can
// both create a record.
type Service interface {
	FindOrCreate(ctx context.Context, name, phone, email string) (string, error)
	List(ctx context.Context) ([]Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// FindOrCreate returns the id of the first customer whose phone or email
// matches. An existing record is returned as is; its name is never updated.
func (s *service) FindOrCreate(ctx context.Context, name, phone, email string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FindOrCreate"),
	)

	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	if phone == "" && email == "" {
		return "", ErrMissingContact
	}

	existing, err := s.repo.FindByPhoneOrEmail(ctx, phone, email)
	if err != nil {
		log.Error("customer lookup failed", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrFailedLookupCustomer, err)
	}
	if existing != nil {
		log.Debug("existing customer reused", zap.String("customer_id", existing.ID))
		return existing.ID, nil
	}

	created, err := s.repo.Create(ctx, strings.TrimSpace(name), phone, email)
	if err != nil {
		log.Error("customer create failed", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrFailedCreateCustomer, err)
	}

	log.Info("customer created", zap.String("customer_id", created.ID))
	return created.ID, nil
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list customers",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedListCustomers, err)
	}
	return customers, nil
}
