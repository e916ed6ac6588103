package converter

import (
	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductModel — запись товара в файле каталога (json или yaml).
type ProductModel struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Price      decimal.Decimal   `json:"price" yaml:"price"`
	Currency   string            `json:"currency" yaml:"currency"`
	Category   string            `json:"category" yaml:"category"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

func ToEntity(model *ProductModel) *domain.Product {
	var attrs map[string]string
	if len(model.Attributes) > 0 {
		attrs = make(map[string]string, len(model.Attributes))
		for k, v := range model.Attributes {
			attrs[k] = v
		}
	}

	return domain.NewProduct(
		model.ID,
		model.Name,
		model.Price,
		model.Currency,
		model.Category,
		attrs,
	)
}

func ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *ToEntity(&models[i]))
	}
	return result
}
