package grpc

import (
	"context"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// MerchantServiceName — полное имя gRPC-сервиса инструментов агента.
const MerchantServiceName = "merchant.v1.MerchantService"

// MerchantServiceServer — инструменты агента поверх gRPC.
// Запросы и ответы передаются как google.protobuf.Struct.
type MerchantServiceServer interface {
	SearchProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateContext(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLastOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var merchantServiceDesc = grpc.ServiceDesc{
	ServiceName: MerchantServiceName,
	HandlerType: (*MerchantServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchProducts", Handler: unaryHandler("SearchProducts", MerchantServiceServer.SearchProducts)},
		{MethodName: "UpdateContext", Handler: unaryHandler("UpdateContext", MerchantServiceServer.UpdateContext)},
		{MethodName: "CreateOrder", Handler: unaryHandler("CreateOrder", MerchantServiceServer.CreateOrder)},
		{MethodName: "GetLastOrder", Handler: unaryHandler("GetLastOrder", MerchantServiceServer.GetLastOrder)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "merchant/v1/merchant.proto",
}

func unaryHandler(
	method string,
	call func(MerchantServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(MerchantServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + MerchantServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MerchantServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type MerchantService struct {
	catalogUC    usecase.CatalogUC
	preferenceUC usecase.PreferenceUC
	orderUC      usecase.OrderUC
	logger       logger.Logger
}

func NewMerchantService(
	catalogUC usecase.CatalogUC,
	preferenceUC usecase.PreferenceUC,
	orderUC usecase.OrderUC,
	logger logger.Logger,
) *MerchantService {
	return &MerchantService{
		catalogUC:    catalogUC,
		preferenceUC: preferenceUC,
		orderUC:      orderUC,
		logger:       logger,
	}
}

// SearchProducts ожидает {"query": "..."}.
func (g *MerchantService) SearchProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.SearchProducts"

	query := req.GetFields()["query"].GetStringValue()

	products, err := g.catalogUC.Search(ctx, sessionID(ctx), query)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	list := make([]any, 0, len(products))
	for i := range products {
		list = append(list, productToMap(&products[i]))
	}

	return newResponse(op, map[string]any{
		"products": list,
		"message":  presenter.Products(products),
	})
}

// UpdateContext ожидает {"key": "diet", "value": "vegan"}.
func (g *MerchantService) UpdateContext(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.UpdateContext"

	fields := req.GetFields()
	key := fields["key"].GetStringValue()
	value := fields["value"].GetStringValue()
	if key == "" || value == "" {
		return nil, GRPCErrorResponse(e.Wrap(op, e.ErrMissingFields))
	}

	res, err := g.preferenceUC.UpdateContext(ctx, sessionID(ctx), key, value)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return newResponse(op, map[string]any{
		"key":     res.Key,
		"value":   res.Value,
		"changed": res.Changed,
		"message": res.Message,
	})
}

// CreateOrder ожидает {"items": [{"product_id": "...", "quantity": 2, "options": {...}}]}.
func (g *MerchantService) CreateOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.CreateOrder"

	rawItems := req.GetFields()["items"].GetListValue().GetValues()
	if len(rawItems) == 0 {
		return nil, GRPCErrorResponse(e.Wrap(op, e.ErrNoItems))
	}

	items := make([]usecase.OrderItemReq, 0, len(rawItems))
	for _, raw := range rawItems {
		fields := raw.GetStructValue().GetFields()

		var quantity any
		if q, ok := fields["quantity"]; ok {
			quantity = q.AsInterface()
		}

		var options map[string]string
		if opts := fields["options"].GetStructValue().GetFields(); len(opts) > 0 {
			options = make(map[string]string, len(opts))
			for k, v := range opts {
				options[k] = valueString(v)
			}
		}

		items = append(items, usecase.NewOrderItemReq(fields["product_id"].GetStringValue(), quantity, options))
	}

	order, err := g.orderUC.CreateOrder(ctx, usecase.NewCreateOrderReq(items))
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return newResponse(op, map[string]any{
		"order":   orderToMap(order),
		"message": presenter.OrderPlaced(order),
	})
}

func (g *MerchantService) GetLastOrder(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetLastOrder"

	order, err := g.orderUC.GetLastOrder(ctx)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	resp := map[string]any{
		"order":   nil,
		"message": presenter.LastOrder(order),
	}
	if order != nil {
		resp["order"] = orderToMap(order)
	}

	return newResponse(op, resp)
}

func sessionID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return sessionFromContext(md)
}

func newResponse(op string, fields map[string]any) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}
	return resp, nil
}

func productToMap(p *domain.Product) map[string]any {
	attrs := make(map[string]any, len(p.Attributes))
	for k, v := range p.Attributes {
		attrs[k] = v
	}

	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price.InexactFloat64(),
		"currency":   p.Currency,
		"category":   p.Category,
		"attributes": attrs,
	}
}

func orderToMap(o *domain.Order) map[string]any {
	items := make([]any, 0, len(o.Items))
	for _, it := range o.Items {
		item := map[string]any{
			"product_id": it.ProductID,
			"name":       it.Name,
			"price":      it.Price.InexactFloat64(),
			"quantity":   it.Quantity,
			"item_total": it.ItemTotal.InexactFloat64(),
		}
		if it.Notes != "" {
			item["notes"] = it.Notes
		}
		items = append(items, item)
	}

	return map[string]any{
		"id":           o.ID,
		"items":        items,
		"total_amount": o.TotalAmount.InexactFloat64(),
		"currency":     o.Currency,
		"created_at":   o.CreatedAt.Format(time.RFC3339Nano),
		"status":       o.Status.String(),
	}
}

func valueString(v *structpb.Value) string {
	if s, ok := v.GetKind().(*structpb.Value_StringValue); ok {
		return s.StringValue
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}
