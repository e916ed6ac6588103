package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	config "github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: &config.AppCfg{
			OrdersFile:      filepath.Join(t.TempDir(), "orders.json"),
			DefaultCurrency: "INR",
			LockTimeout:     time.Second,
		},
		Log:  &config.LogCfg{Level: "info", Format: "console"},
		Http: &config.HTTPConfig{Port: "0"},
		Grpc: &config.GRPCConfig{Port: "0", NetworkMode: "tcp"},
	}
}

func closeServices(t *testing.T, s *Services) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
}

func TestNewServices_OrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewServices(ctx, testConfig(t), logger.NewNop())
	require.NoError(t, err)
	defer closeServices(t, s)

	require.NoError(t, s.Ready(ctx))

	order, err := s.Order.CreateOrder(ctx, usecase.NewCreateOrderReq([]usecase.OrderItemReq{
		usecase.NewOrderItemReq("snack-001", 3, nil),
	}))
	require.NoError(t, err)
	assert.Equal(t, "60", order.TotalAmount.String())

	last, err := s.Order.GetLastOrder(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, order.ID, last.ID)
}

func TestNewServices_SearchCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Redis = &config.RedisCfg{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		SearchTTL:   time.Minute,
		KeyPrefix:   "merchant:",
	}

	ctx := context.Background()
	s, err := NewServices(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer closeServices(t, s)

	first, err := s.Catalog.Search(ctx, "s1", "fizzy")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Запись в кэш идет в фоне
	require.Eventually(t, func() bool {
		return len(mr.Keys()) == 1
	}, time.Second, 10*time.Millisecond)

	second, err := s.Catalog.Search(ctx, "s1", "fizzy")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewServices_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis = &config.RedisCfg{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		Timeout:     100 * time.Millisecond,
		SearchTTL:   time.Minute,
		KeyPrefix:   "merchant:",
	}

	ctx := context.Background()
	s, err := NewServices(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer closeServices(t, s)

	products, err := s.Catalog.Search(ctx, "", "masala")
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestNewServices_BadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.CatalogPath = filepath.Join(t.TempDir(), "catalog.csv")

	_, err := NewServices(context.Background(), cfg, logger.NewNop())
	require.Error(t, err)
}

func writeCatalog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewServices_SearchCacheIsPerCatalog(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCfg := &config.RedisCfg{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		SearchTTL:   time.Minute,
		KeyPrefix:   "merchant:",
	}
	ctx := context.Background()

	cfgA := testConfig(t)
	cfgA.Redis = redisCfg
	cfgA.App.CatalogPath = writeCatalog(t, "a.json",
		`[{"id":"x","name":"Coke Zero","price":40,"currency":"INR","category":"beverages"}]`)

	cfgB := testConfig(t)
	cfgB.Redis = redisCfg
	cfgB.App.CatalogPath = writeCatalog(t, "b.json",
		`[{"id":"x","name":"Still Water","price":20,"currency":"INR","category":"water"}]`)

	a, err := NewServices(ctx, cfgA, logger.NewNop())
	require.NoError(t, err)
	defer closeServices(t, a)

	found, err := a.Catalog.Search(ctx, "s1", "coke")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Eventually(t, func() bool {
		return len(mr.Keys()) == 1
	}, time.Second, 10*time.Millisecond)

	b, err := NewServices(ctx, cfgB, logger.NewNop())
	require.NoError(t, err)
	defer closeServices(t, b)

	notFound, err := b.Catalog.Search(ctx, "s1", "coke")
	require.NoError(t, err)
	assert.Empty(t, notFound)

	cleared, err := b.Catalog.ClearSearchCache(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Eventually(t, func() bool {
		return len(mr.Keys()) == 0
	}, time.Second, 10*time.Millisecond)
}
