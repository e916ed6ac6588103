package domain

import "github.com/shopspring/decimal"

// CartItem — строка корзины.
type CartItem struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Notes     string
}

// LineTotal = UnitPrice × Quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart собирает строки одного заказа. Повторное добавление того же товара
// создает новую строку, количества не объединяются.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem добавляет строку в конец корзины. Количество меньше 1 приводится к 1.
func (c *Cart) AddItem(itemID, name string, unitPrice decimal.Decimal, quantity int, notes string) {
	if quantity < 1 {
		quantity = 1
	}

	c.items = append(c.items, CartItem{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Notes:     notes,
	})
}

// Items возвращает копию строк в порядке добавления.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total — сумма LineTotal всех строк.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}
