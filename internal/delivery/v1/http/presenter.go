package http

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
)

type ProductDTO struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Price      json.Number       `json:"price"`
	Currency   string            `json:"currency"`
	Category   string            `json:"category"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type ProductsResponse struct {
	Products []ProductDTO `json:"products"`
	Message  string       `json:"message"`
}

type ProductResponse struct {
	Product *ProductDTO `json:"product"`
	Message string      `json:"message"`
}

type OrderItemDTO struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
	Notes     string      `json:"notes,omitempty"`
	ItemTotal json.Number `json:"item_total"`
}

type OrderDTO struct {
	ID          string         `json:"id"`
	Items       []OrderItemDTO `json:"items"`
	TotalAmount json.Number    `json:"total_amount"`
	Currency    string         `json:"currency"`
	CreatedAt   time.Time      `json:"created_at"`
	Status      string         `json:"status"`
}

type OrderResponse struct {
	Order   *OrderDTO `json:"order"`
	Message string    `json:"message"`
}

type OrdersResponse struct {
	Orders  []OrderDTO `json:"orders"`
	Message string     `json:"message"`
}

type ContextResponse struct {
	SessionID string   `json:"session_id"`
	Diet      []string `json:"diet"`
	Likes     []string `json:"likes"`
	Message   string   `json:"message"`
}

type UpdateContextResponse struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		Price:      json.Number(p.Price.String()),
		Currency:   p.Currency,
		Category:   p.Category,
		Attributes: p.Attributes,
	}
}

func toArrProductDTO(products []domain.Product) []ProductDTO {
	result := make([]ProductDTO, 0, len(products))
	for i := range products {
		result = append(result, toProductDTO(&products[i]))
	}
	return result
}

func toOrderDTO(o *domain.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     json.Number(it.Price.String()),
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			ItemTotal: json.Number(it.ItemTotal.String()),
		})
	}

	return &OrderDTO{
		ID:          o.ID,
		Items:       items,
		TotalAmount: json.Number(o.TotalAmount.String()),
		Currency:    o.Currency,
		CreatedAt:   o.CreatedAt,
		Status:      o.Status.String(),
	}
}

func toArrOrderDTO(orders []domain.Order) []OrderDTO {
	result := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		result = append(result, *toOrderDTO(&orders[i]))
	}
	return result
}
