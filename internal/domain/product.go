package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога. После загрузки каталога не изменяется.
type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	Currency   string
	Category   string
	Attributes map[string]string
}

func NewProduct(id, name string, price decimal.Decimal, currency, category string, attributes map[string]string) *Product {
	return &Product{
		ID:         id,
		Name:       name,
		Price:      price,
		Currency:   currency,
		Category:   category,
		Attributes: attributes,
	}
}

// Attribute возвращает значение атрибута или пустую строку.
func (p *Product) Attribute(key string) string {
	if p.Attributes == nil {
		return ""
	}
	return p.Attributes[key]
}

// InCategory сравнивает категорию без учета регистра.
func (p *Product) InCategory(category string) bool {
	return strings.EqualFold(p.Category, category)
}
