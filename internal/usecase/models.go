package usecase

import (
	"github.com/shopspring/decimal"
)

// DefaultSessionID используется, когда вызывающая сторона не передала идентификатор сессии.
const DefaultSessionID = "default"

// ProductFilter — явный набор фильтров каталога. Nil-поля не участвуют в фильтрации.
type ProductFilter struct {
	Category *string          // точное совпадение без учета регистра
	MinPrice *decimal.Decimal // включительно
	MaxPrice *decimal.Decimal // включительно
	Color    *string          // подстрока attributes["color"]
	Search   *string          // подстрока названия или attributes["description"]
}

// OrderItemReq — позиция запроса на заказ в том виде, в котором ее прислал агент.
// Quantity может быть числом, строкой или отсутствовать.
type OrderItemReq struct {
	ProductID string
	Quantity  any
	Options   map[string]string
}

// CreateOrderReq — запрос на оформление заказа.
type CreateOrderReq struct {
	Items []OrderItemReq
}

// UpdateContextRes — результат обновления контекста.
type UpdateContextRes struct {
	Key     string
	Value   string
	Changed bool
	Message string
}

// ContextSnapshot — копия предпочтений сессии.
type ContextSnapshot struct {
	SessionID string
	Diet      []string
	Likes     []string
}

// MAPPERS

func NewCreateOrderReq(items []OrderItemReq) *CreateOrderReq {
	return &CreateOrderReq{Items: items}
}

func NewOrderItemReq(productID string, quantity any, options map[string]string) OrderItemReq {
	return OrderItemReq{
		ProductID: productID,
		Quantity:  quantity,
		Options:   options,
	}
}

func NewContextSnapshot(sessionID string, diet, likes []string) *ContextSnapshot {
	return &ContextSnapshot{
		SessionID: sessionID,
		Diet:      diet,
		Likes:     likes,
	}
}

func sessionOrDefault(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}
