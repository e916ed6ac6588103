package usecase

import (
	"context"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

type CatalogRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type OrderRepository interface {
	Append(ctx context.Context, order *domain.Order) error
	Last(ctx context.Context) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.UserContext, error)
	Reset(ctx context.Context, sessionID string) error
}

type SearchCacheRepository interface {
	GetSearch(ctx context.Context, key string) ([]string, error)
	SetSearch(ctx context.Context, key string, productIDs []string) error
	InvalidateSearch(ctx context.Context) error
}
