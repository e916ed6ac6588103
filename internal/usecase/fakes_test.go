package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	products []domain.Product
}

func newFakeCatalog() *fakeCatalog {
	p := func(id, name string, price int64, category string, attrs map[string]string) domain.Product {
		return *domain.NewProduct(id, name, decimal.NewFromInt(price), "INR", category, attrs)
	}

	return &fakeCatalog{products: []domain.Product{
		p("dairy-001", "Amul Taaza Fresh Milk", 27, "dairy", nil),
		p("dairy-002", "Amul Masti Dahi", 35, "dairy", nil),
		p("bakery-001", "Britannia White Bread", 45, "bakery", map[string]string{"color": "white"}),
		p("bev-001", "Coca-Cola Original", 40, "beverages", map[string]string{"description": "Chilled soft drink"}),
		p("veg-001", "Onion (Pyaz)", 40, "vegetables", map[string]string{"color": "Red"}),
	}}
}

func (f *fakeCatalog) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, e.Wrap(id, e.ErrProductNotFound)
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   []domain.Order
	failWith error
}

func (f *fakeOrderRepo) Append(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	for _, o := range f.orders {
		if o.ID == order.ID {
			return e.Wrap(order.ID, e.ErrDuplicateOrder)
		}
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) Last(context.Context) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.orders) == 0 {
		return nil, nil
	}
	o := f.orders[len(f.orders)-1]
	return &o, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, e.Wrap(id, e.ErrOrderNotFound)
}

func (f *fakeOrderRepo) List(context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*domain.UserContext
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*domain.UserContext{}}
}

func (f *fakeSessions) Get(_ context.Context, id string) (*domain.UserContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uc, ok := f.sessions[id]
	if !ok {
		uc = domain.NewUserContext()
		f.sessions[id] = uc
	}
	return uc, nil
}

func (f *fakeSessions) Reset(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]string
	gets    int
	sets    chan string
	failGet error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]string{}, sets: make(chan string, 10)}
}

func (f *fakeCache) GetSearch(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets++
	if f.failGet != nil {
		return nil, f.failGet
	}
	ids, ok := f.data[key]
	if !ok {
		return nil, e.ErrCacheMiss
	}
	return ids, nil
}

func (f *fakeCache) SetSearch(_ context.Context, key string, ids []string) error {
	f.mu.Lock()
	f.data[key] = ids
	f.mu.Unlock()

	f.sets <- key
	return nil
}

func (f *fakeCache) InvalidateSearch(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = map[string][]string{}
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	orders []string
	err    error
}

func (f *fakeProducer) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders = append(f.orders, order.ID)
	return f.err
}

func (f *fakeProducer) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.orders...)
}
