package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/shopspring/decimal"
)

// legacyTimeLayout — формат created_at без часового пояса, который встречается в старых файлах заказов.
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// OrderItemModel — позиция заказа в JSON-файле.
type OrderItemModel struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
	Notes     string      `json:"notes,omitempty"`
	ItemTotal json.Number `json:"item_total"`
}

// OrderModel — заказ в JSON-файле. Денежные суммы хранятся числами без потери точности.
type OrderModel struct {
	ID          string           `json:"id"`
	Items       []OrderItemModel `json:"items"`
	TotalAmount json.Number      `json:"total_amount"`
	Currency    string           `json:"currency"`
	CreatedAt   string           `json:"created_at"`
	Status      string           `json:"status"`
}

func ToModel(entity *domain.Order) *OrderModel {
	items := make([]OrderItemModel, 0, len(entity.Items))
	for _, it := range entity.Items {
		items = append(items, OrderItemModel{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     json.Number(it.Price.String()),
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			ItemTotal: json.Number(it.ItemTotal.String()),
		})
	}

	return &OrderModel{
		ID:          entity.ID,
		Items:       items,
		TotalAmount: json.Number(entity.TotalAmount.String()),
		Currency:    entity.Currency,
		CreatedAt:   entity.CreatedAt.Format(time.RFC3339Nano),
		Status:      entity.Status.String(),
	}
}

func ToEntity(model *OrderModel) (*domain.Order, error) {
	total, err := decimal.NewFromString(model.TotalAmount.String())
	if err != nil {
		return nil, fmt.Errorf("order %s: total_amount: %w", model.ID, err)
	}

	createdAt, err := parseCreatedAt(model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("order %s: created_at: %w", model.ID, err)
	}

	items := make([]domain.OrderItem, 0, len(model.Items))
	for _, it := range model.Items {
		price, err := decimal.NewFromString(it.Price.String())
		if err != nil {
			return nil, fmt.Errorf("order %s: item %s price: %w", model.ID, it.ProductID, err)
		}

		itemTotal, err := decimal.NewFromString(it.ItemTotal.String())
		if err != nil {
			return nil, fmt.Errorf("order %s: item %s item_total: %w", model.ID, it.ProductID, err)
		}

		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     price,
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			ItemTotal: itemTotal,
		})
	}

	return &domain.Order{
		ID:          model.ID,
		Items:       items,
		TotalAmount: total,
		Currency:    model.Currency,
		CreatedAt:   createdAt,
		Status:      domain.OrderStatus(model.Status),
	}, nil
}

func ToArrEntity(models []OrderModel) ([]domain.Order, error) {
	result := make([]domain.Order, 0, len(models))
	for i := range models {
		order, err := ToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, nil
}

func parseCreatedAt(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation(legacyTimeLayout, v, time.UTC)
}
