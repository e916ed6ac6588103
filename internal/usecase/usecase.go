package usecase

import (
	"context"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

// CatalogUC — поиск и фильтрация товаров.
type CatalogUC interface {
	Search(ctx context.Context, sessionID, query string) ([]domain.Product, error)
	ListProducts(ctx context.Context, filter *ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// PreferenceUC — управление предпочтениями пользователя в сессии.
type PreferenceUC interface {
	UpdateContext(ctx context.Context, sessionID, key, value string) (*UpdateContextRes, error)
	GetContext(ctx context.Context, sessionID string) (*ContextSnapshot, error)
	ResetContext(ctx context.Context, sessionID string) error
}

// OrderUC — оформление и чтение заказов.
type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
	GetLastOrder(ctx context.Context) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}
