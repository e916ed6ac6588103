package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/google/uuid"
)

const (
	// OrderIDPrefix — префикс идентификатора заказа.
	OrderIDPrefix = "BLK-"

	orderIDTokenLen     = 8
	maxOrderIDAttempts  = 3
	defaultEventTimeout = 15 * time.Second
)

// OrderUseCase собирает корзину из запроса агента, считает сумму и сохраняет заказ.
type OrderUseCase struct {
	catalogRepo     CatalogRepository
	orderRepo       OrderRepository
	producer        OrderEventProducer // nil, если Kafka не настроена
	logger          logger.Logger
	defaultCurrency string
	eventTimeout    time.Duration

	now   func() time.Time
	newID func() string

	events sync.WaitGroup
}

func NewOrderUC(
	catalogRepo CatalogRepository,
	orderRepo OrderRepository,
	producer OrderEventProducer,
	logger logger.Logger,
	defaultCurrency string,
) *OrderUseCase {
	return &OrderUseCase{
		catalogRepo:     catalogRepo,
		orderRepo:       orderRepo,
		producer:        producer,
		logger:          logger,
		defaultCurrency: defaultCurrency,
		eventTimeout:    defaultEventTimeout,
		now:             func() time.Time { return time.Now().UTC() },
		newID:           NewOrderID,
	}
}

// NewOrderID генерирует идентификатор вида BLK-1A2B3C4D из случайного UUIDv4.
func NewOrderID() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return OrderIDPrefix + strings.ToUpper(token[:orderIDTokenLen])
}

// CreateOrder оформляет заказ. Позиции с неизвестным товаром пропускаются,
// некорректное количество заменяется на 1. Если не осталось ни одной позиции,
// возвращается e.ErrNoValidItems и хранилище не изменяется.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.CreateOrder"

	if req == nil || len(req.Items) == 0 {
		return nil, e.Wrap(op, e.ErrNoValidItems)
	}

	cart, currency, err := o.buildCart(ctx, req.Items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if cart.IsEmpty() {
		return nil, e.Wrap(op, e.ErrNoValidItems)
	}
	if skipped := len(req.Items) - cart.Len(); skipped > 0 {
		o.logger.Warnf("%d of %d order items skipped", skipped, len(req.Items))
	}

	order, err := o.persist(ctx, cart, currency)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order placed: id=%s items=%d total=%s %s", order.ID, len(order.Items), order.TotalAmount, order.Currency)

	o.publishPlaced(order)

	return order, nil
}

// GetLastOrder возвращает последний сохраненный заказ или nil, если заказов нет.
func (o *OrderUseCase) GetLastOrder(ctx context.Context) (*domain.Order, error) {
	const op = "OrderUseCase.GetLastOrder"

	order, err := o.orderRepo.Last(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// GetOrder возвращает заказ по идентификатору.
func (o *OrderUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrder"

	order, err := o.orderRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// ListOrders возвращает все заказы в порядке создания.
func (o *OrderUseCase) ListOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// WaitForEvents ожидает отправки фоновых событий о заказах.
func (o *OrderUseCase) WaitForEvents(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.events.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("order events were not flushed before shutdown: %w", ctx.Err())
	}
}

// buildCart сопоставляет позиции запроса с каталогом.
// Возвращает валюту последней найденной позиции или валюту по умолчанию.
func (o *OrderUseCase) buildCart(ctx context.Context, items []OrderItemReq) (*domain.Cart, string, error) {
	cart := domain.NewCart()
	currency := o.defaultCurrency

	for _, item := range items {
		product, err := o.catalogRepo.GetByID(ctx, strings.TrimSpace(item.ProductID))
		if err != nil {
			if errors.Is(err, e.ErrProductNotFound) {
				o.logger.Warnf("Product ID %s not found, skipping", item.ProductID)
				continue
			}
			return nil, "", err
		}

		qty := ParseQuantity(item.Quantity)
		if qty.Defaulted && item.Quantity != nil {
			o.logger.Warnf("Quantity %v for product %s is invalid, using %d", item.Quantity, product.ID, qty.Value)
		}

		cart.AddItem(product.ID, product.Name, product.Price, qty.Value, notesFromOptions(item.Options))
		if product.Currency != "" {
			currency = product.Currency
		}
	}

	return cart, currency, nil
}

// persist сохраняет заказ, перегенерируя идентификатор при редкой коллизии.
func (o *OrderUseCase) persist(ctx context.Context, cart *domain.Cart, currency string) (*domain.Order, error) {
	var err error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		order := domain.NewOrderFromCart(o.newID(), cart, currency, o.now())

		err = o.orderRepo.Append(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, e.ErrDuplicateOrder) {
			return nil, err
		}
		o.logger.Warnf("order id %s collided, regenerating", order.ID)
	}

	return nil, err
}

// publishPlaced отправляет событие о заказе в фоне. Ошибки отправки только логируются:
// заказ уже сохранен в хранилище.
func (o *OrderUseCase) publishPlaced(order *domain.Order) {
	const op = "OrderUseCase.publishPlaced"

	if o.producer == nil {
		return
	}

	o.events.Add(1)
	go func() {
		defer o.events.Done()

		ctx, cancel := context.WithTimeout(context.Background(), o.eventTimeout)
		defer cancel()

		if err := o.producer.PublishOrderPlaced(ctx, order); err != nil {
			o.logger.Warnf("Failed to publish order event (order %s): %v", order.ID, e.Wrap(op, err))
		}
	}()
}

// notesFromOptions склеивает опции позиции в строку вида "color: Black, size: M".
func notesFromOptions(options map[string]string) string {
	if len(options) == 0 {
		return ""
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, options[k]))
	}

	return strings.Join(parts, ", ")
}
