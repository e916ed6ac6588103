package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem — снимок строки корзины на момент оформления.
// Цена не пересчитывается при последующих изменениях каталога.
type OrderItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Notes     string
	ItemTotal decimal.Decimal
}

// Order описывает оформленный заказ. После создания не изменяется.
type Order struct {
	ID          string
	Items       []OrderItem
	TotalAmount decimal.Decimal
	Currency    string
	CreatedAt   time.Time
	Status      OrderStatus
}

// NewOrderFromCart фиксирует содержимое корзины в заказ со статусом placed.
func NewOrderFromCart(id string, cart *Cart, currency string, createdAt time.Time) *Order {
	cartItems := cart.Items()
	items := make([]OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		items = append(items, OrderItem{
			ProductID: ci.ItemID,
			Name:      ci.Name,
			Price:     ci.UnitPrice,
			Quantity:  ci.Quantity,
			Notes:     ci.Notes,
			ItemTotal: ci.LineTotal(),
		})
	}

	return &Order{
		ID:          id,
		Items:       items,
		TotalAmount: cart.Total(),
		Currency:    currency,
		CreatedAt:   createdAt,
		Status:      OrderStatusPlaced,
	}
}
