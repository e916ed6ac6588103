package http

import (
	"fmt"
	"net/http"

	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type OrderItemRequest struct {
	ProductID string         `json:"product_id"`
	Quantity  any            `json:"quantity,omitempty" swaggertype:"integer"`
	Options   map[string]any `json:"options,omitempty"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// createOrder
//
//	@Summary		Оформление заказа
//	@Description	Оформляет заказ. Неизвестные товары пропускаются, некорректное количество заменяется на 1.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Позиции заказа"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse	"Нет ни одной валидной позиции"
//	@Failure		500		{object}	ErrorResponse	"Заказ не сохранен"
//	@Router			/orders [post]
func (o *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		o.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	if len(req.Items) == 0 {
		o.logger.Warnf("%d %s", http.StatusBadRequest, e.ErrNoItems.Error())
		WriteError(w, e.ErrNoItems)
		return
	}

	o.logger.Infof("Create order called with %d items", len(req.Items))

	order, err := o.orderUsecase.CreateOrder(r.Context(), toCreateOrderReq(&req))
	if err != nil {
		o.logger.Warnf("Create order failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &OrderResponse{
		Order:   toOrderDTO(order),
		Message: presenter.OrderPlaced(order),
	})
}

// getLastOrder
//
//	@Summary		Последний заказ
//	@Description	Возвращает последний оформленный заказ. Если заказов нет, order равен null.
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	OrderResponse
//	@Router			/orders/last [get]
func (o *OrderHandler) getLastOrder(w http.ResponseWriter, r *http.Request) {
	order, err := o.orderUsecase.GetLastOrder(r.Context())
	if err != nil {
		o.logger.Errorf(err, "Get last order failed")
		WriteError(w, err)
		return
	}

	resp := &OrderResponse{Message: presenter.LastOrder(order)}
	if order != nil {
		resp.Order = toOrderDTO(order)
	}

	WriteSuccess(w, http.StatusOK, resp)
}

// getOrder
//
//	@Summary		Заказ по идентификатору
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор заказа"
//	@Success		200	{object}	OrderResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders/{id} [get]
func (o *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := o.orderUsecase.GetOrder(r.Context(), id)
	if err != nil {
		o.logger.Warnf("Get order %s failed: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &OrderResponse{
		Order:   toOrderDTO(order),
		Message: presenter.Order(order),
	})
}

// listOrders
//
//	@Summary		Все заказы
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	OrdersResponse
//	@Router			/orders [get]
func (o *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := o.orderUsecase.ListOrders(r.Context())
	if err != nil {
		o.logger.Errorf(err, "List orders failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &OrdersResponse{
		Orders:  toArrOrderDTO(orders),
		Message: presenter.Orders(orders),
	})
}

func toCreateOrderReq(req *CreateOrderRequest) *usecase.CreateOrderReq {
	items := make([]usecase.OrderItemReq, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.NewOrderItemReq(it.ProductID, it.Quantity, toOptions(it.Options)))
	}
	return usecase.NewCreateOrderReq(items)
}

func toOptions(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	opts := make(map[string]string, len(raw))
	for k, v := range raw {
		opts[k] = fmt.Sprint(v)
	}
	return opts
}
