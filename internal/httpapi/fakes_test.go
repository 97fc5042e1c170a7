package httpapi

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cym-store/internal/cart"
	"cym-store/internal/customer"
	"cym-store/internal/metrics"
	"cym-store/internal/order"
	"cym-store/internal/product"
)

const (
	premiumID = "11111111-1111-1111-1111-111111111111"
	vintageID = "33333333-3333-3333-3333-333333333333"
	orderID   = "99999999-9999-9999-9999-999999999999"
)

type fakeProducts struct {
	mu      sync.Mutex
	items   map[string]product.Product
	listErr error
}

func newFakeProducts(ps ...product.Product) *fakeProducts {
	f := &fakeProducts{items: map[string]product.Product{}}
	for _, p := range ps {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) failList(err error) {
	f.mu.Lock()
	f.listErr = err
	f.mu.Unlock()
}

func (f *fakeProducts) List(_ context.Context, opts product.ListOptions) ([]product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := []product.Product{}
	for _, p := range f.items {
		if opts.Category != "" && opts.Category != product.AllCategories && p.Category != opts.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProducts) Create(_ context.Context, in product.NewProductInput) (product.Product, error) {
	if err := in.Validate(); err != nil {
		return product.Product{}, err
	}
	p := product.Product{ID: "22222222-2222-2222-2222-222222222222", Name: in.Name, Price: in.Price, Category: in.Category, Stock: in.Stock}
	f.mu.Lock()
	f.items[p.ID] = p
	f.mu.Unlock()
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, in product.UpdateProductInput) (product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	f.items[id] = p
	return p, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProducts) Categories(context.Context) ([]string, error) {
	return []string{"Premium", "Vintage"}, nil
}

func (f *fakeProducts) SeedDemo(context.Context) (int, error) { return 0, nil }

type placedCall struct {
	name, phone, email string
	items              []cart.CartItem
}

type fakeOrders struct {
	mu     sync.Mutex
	placed []placedCall
	err    error
}

func (f *fakeOrders) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeOrders) calls() []placedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]placedCall(nil), f.placed...)
}

func (f *fakeOrders) PlaceOrder(_ context.Context, name, phone, email string, items []cart.CartItem) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.placed = append(f.placed, placedCall{name, phone, email, items})

	return &order.Order{
		ID:             orderID,
		CustomerName:   name,
		CustomerPhone:  phone,
		CustomerEmail:  email,
		Total:          cart.Total(items),
		Status:         order.StatusPending,
		HasCustomItems: cart.HasCustomLines(items),
		CreatedAt:      time.Now(),
	}, nil
}

func (f *fakeOrders) List(_ context.Context, status string) ([]order.Order, error) {
	if status != "" {
		if _, err := order.ParseStatus(status); err != nil {
			return nil, err
		}
	}
	return []order.Order{{ID: orderID, Status: order.StatusPending}}, nil
}

func (f *fakeOrders) Get(_ context.Context, id string) (*order.Order, error) {
	if id != orderID {
		return nil, order.ErrOrderNotFound
	}
	return &order.Order{ID: id}, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id, status string) (*order.Order, error) {
	s, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if id != orderID {
		return nil, order.ErrOrderNotFound
	}
	return &order.Order{ID: id, Status: s}, nil
}

type fakeCustomers struct{}

func (fakeCustomers) FindOrCreate(context.Context, string, string, string) (string, error) {
	return "c-1", nil
}

func (fakeCustomers) List(context.Context) ([]customer.Customer, error) {
	return []customer.Customer{{ID: "c-1", Name: "Amina", OrderIDs: []string{orderID}}}, nil
}

type fakeStats struct{ err error }

func (f fakeStats) Stats(context.Context) (metrics.Stats, error) {
	if f.err != nil {
		return metrics.Stats{}, f.err
	}
	return metrics.Stats{Snapshot: metrics.Snapshot{Products: 2, Orders: 1, Customers: 1}}, nil
}

var errDB = errors.New("db down")
