package usecase

import (
	"context"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

type OrderEventProducer interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}
