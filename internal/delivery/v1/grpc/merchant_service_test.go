package grpc

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/catalog"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/jsonfile"
	"github.com/DRSN-tech/grocery-merchant/internal/repository/memory"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startServer(t *testing.T) (*GRPCServer, *grpc.ClientConn) {
	t.Helper()

	log := logger.NewNop()

	catalogRepo, err := catalog.Load("")
	require.NoError(t, err)
	orderRepo, err := jsonfile.NewOrderRepo(filepath.Join(t.TempDir(), "orders.json"), time.Second, log)
	require.NoError(t, err)
	sessions := memory.NewSessionRepo()

	srv := NewGRPCServer(&cfg.GRPCConfig{Port: "0", NetworkMode: "tcp"}, log)
	srv.RegisterServices(
		usecase.NewCatalogUC(catalogRepo, sessions, nil, log),
		usecase.NewPreferenceUC(sessions, log),
		usecase.NewOrderUC(catalogRepo, orderRepo, nil, log, "INR"),
	)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	return srv, conn
}

func invoke(t *testing.T, ctx context.Context, conn *grpc.ClientConn, method string, in map[string]any) (*structpb.Struct, error) {
	t.Helper()

	req, err := structpb.NewStruct(in)
	require.NoError(t, err)

	out := new(structpb.Struct)
	err = conn.Invoke(ctx, "/"+MerchantServiceName+"/"+method, req, out)
	return out, err
}

func withSession(id string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), sessionMetadataKey, id)
}

func TestMerchantService_SearchWithSessionPreferences(t *testing.T) {
	_, conn := startServer(t)

	resp, err := invoke(t, withSession("s1"), conn, "SearchProducts", map[string]any{"query": "calcium"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.GetFields()["products"].GetListValue().GetValues())

	upd, err := invoke(t, withSession("s1"), conn, "UpdateContext", map[string]any{"key": "diet", "value": "vegan"})
	require.NoError(t, err)
	assert.Equal(t, "Updated context: diet is now vegan.", upd.GetFields()["message"].GetStringValue())
	assert.True(t, upd.GetFields()["changed"].GetBoolValue())

	resp, err = invoke(t, withSession("s1"), conn, "SearchProducts", map[string]any{"query": "calcium"})
	require.NoError(t, err)
	assert.Empty(t, resp.GetFields()["products"].GetListValue().GetValues())
	assert.Equal(t, "No matching products found. Try a different search term.", resp.GetFields()["message"].GetStringValue())
}

func TestMerchantService_Orders(t *testing.T) {
	_, conn := startServer(t)
	ctx := context.Background()

	last, err := invoke(t, ctx, conn, "GetLastOrder", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "No recent orders found.", last.GetFields()["message"].GetStringValue())

	created, err := invoke(t, ctx, conn, "CreateOrder", map[string]any{
		"items": []any{
			map[string]any{"product_id": "dairy-001", "quantity": 2},
			map[string]any{"product_id": "bakery-001", "options": map[string]any{"slices": "thin"}},
		},
	})
	require.NoError(t, err)

	order := created.GetFields()["order"].GetStructValue().GetFields()
	assert.Equal(t, float64(99), order["total_amount"].GetNumberValue())
	assert.Equal(t, "placed", order["status"].GetStringValue())
	items := order["items"].GetListValue().GetValues()
	require.Len(t, items, 2)
	assert.Equal(t, "slices: thin", items[1].GetStructValue().GetFields()["notes"].GetStringValue())

	last, err = invoke(t, ctx, conn, "GetLastOrder", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, order["id"].GetStringValue(), last.GetFields()["order"].GetStructValue().GetFields()["id"].GetStringValue())
}

func TestMerchantService_Errors(t *testing.T) {
	_, conn := startServer(t)
	ctx := context.Background()

	_, err := invoke(t, ctx, conn, "CreateOrder", map[string]any{
		"items": []any{map[string]any{"product_id": "ghost"}},
	})
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, "No valid items in order.", status.Convert(err).Message())

	_, err = invoke(t, ctx, conn, "CreateOrder", map[string]any{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "No items provided.", status.Convert(err).Message())

	_, err = invoke(t, ctx, conn, "UpdateContext", map[string]any{"key": "diet"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "Required fields are missing.", status.Convert(err).Message())
	assert.NotContains(t, status.Convert(err).Message(), "grpc.")
}

func TestHealth(t *testing.T) {
	srv, conn := startServer(t)
	client := healthpb.NewHealthClient(conn)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: MerchantServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	srv.SetServing(true)

	resp, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestGRPCErrorResponse(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
		msg  string
	}{
		{e.Wrap("grpc.CreateOrder", e.ErrNoValidItems), codes.FailedPrecondition, "No valid items in order."},
		{e.Wrap("grpc.GetOrder", e.ErrOrderNotFound), codes.NotFound, "Order not found."},
		{e.Wrap("grpc.UpdateContext", e.ErrMissingFields), codes.InvalidArgument, "Required fields are missing."},
		{e.Wrap("grpc.CreateOrder", e.ErrNoItems), codes.InvalidArgument, "No items provided."},
		{e.Wrap("grpc.CreateOrder", e.ErrInvalidPrice), codes.InvalidArgument, "Price must be a non-negative number."},
		{e.Wrap("grpc.CreateOrder", e.ErrStoreWrite), codes.Unavailable, "Failed to place order: the order was not saved."},
		{errors.New("disk on fire"), codes.Internal, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		st := status.Convert(GRPCErrorResponse(tt.err))
		assert.Equal(t, tt.code, st.Code(), tt.err.Error())
		assert.Equal(t, tt.msg, st.Message())
		assert.NotContains(t, st.Message(), "grpc.")
		assert.NotContains(t, st.Message(), "disk on fire")
	}
}
