package customer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByPhoneOrEmail(ctx context.Context, phone, email string) (*Customer, error) {
	args := m.Called(ctx, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, name, phone, email string) (Customer, error) {
	args := m.Called(ctx, name, phone, email)
	return args.Get(0).(Customer), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Customer), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// memoryRepository mimics the phone-or-email lookup of the SQL repository.
type memoryRepository struct {
	customers []Customer
}

func (r *memoryRepository) FindByPhoneOrEmail(_ context.Context, phone, email string) (*Customer, error) {
	for i := range r.customers {
		c := r.customers[i]
		if (phone != "" && c.Phone == phone) || (email != "" && c.Email == email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) Create(_ context.Context, name, phone, email string) (Customer, error) {
	c := Customer{
		ID:        fmt.Sprintf("c-%d", len(r.customers)+1),
		Name:      name,
		Phone:     phone,
		Email:     email,
		CreatedAt: time.Now(),
		OrderIDs:  []string{},
	}
	r.customers = append(r.customers, c)
	return c, nil
}

func (r *memoryRepository) List(context.Context) ([]Customer, error) { return r.customers, nil }
func (r *memoryRepository) Count(context.Context) (int, error)       { return len(r.customers), nil }

func TestService_FindOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("SamePhoneReusesFirstRecord", func(t *testing.T) {
		repo := &memoryRepository{}
		svc := NewService(repo)

		first, err := svc.FindOrCreate(ctx, "Amina", "+212600000000", "amina@example.com")
		require.NoError(t, err)

		second, err := svc.FindOrCreate(ctx, "Amina B.", "+212600000000", "other@example.com")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		require.Len(t, repo.customers, 1)
		assert.Equal(t, "Amina", repo.customers[0].Name)
	})

	t.Run("SameEmailReusesRecord", func(t *testing.T) {
		repo := &memoryRepository{}
		svc := NewService(repo)

		first, _ := svc.FindOrCreate(ctx, "Omar", "+1", "omar@example.com")
		second, _ := svc.FindOrCreate(ctx, "Omar", "+2", "omar@example.com")

		assert.Equal(t, first, second)
		assert.Len(t, repo.customers, 1)
	})

	t.Run("EmptyEmailDoesNotMatchOtherEmptyEmail", func(t *testing.T) {
		repo := &memoryRepository{}
		svc := NewService(repo)

		a, _ := svc.FindOrCreate(ctx, "A", "+1", "")
		b, _ := svc.FindOrCreate(ctx, "B", "+2", "")

		assert.NotEqual(t, a, b)
		assert.Len(t, repo.customers, 2)
	})

	t.Run("MissingContact", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.FindOrCreate(ctx, "Nobody", " ", "")
		assert.ErrorIs(t, err, ErrMissingContact)
	})

	t.Run("LookupFailure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByPhoneOrEmail", ctx, "+1", "").Return(nil, errors.New("timeout"))

		svc := NewService(repo)
		_, err := svc.FindOrCreate(ctx, "X", "+1", "")

		assert.ErrorIs(t, err, ErrFailedLookupCustomer)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CreateFailure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByPhoneOrEmail", ctx, "+1", "").Return(nil, nil)
		repo.On("Create", ctx, "X", "+1", "").Return(Customer{}, errors.New("insert failed"))

		svc := NewService(repo)
		_, err := svc.FindOrCreate(ctx, " X ", "+1", "")

		assert.ErrorIs(t, err, ErrFailedCreateCustomer)
		repo.AssertExpectations(t)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("List", ctx).Return([]Customer{{ID: "c-1"}}, nil).Once()
	repo.On("List", ctx).Return(nil, errors.New("boom")).Once()

	svc := NewService(repo)

	customers, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, customers, 1)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrFailedListCustomers)
}
