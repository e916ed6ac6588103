package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t      *testing.T
	orders string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, k := range []string{"REDIS_ADDR", "REDIS_KEY_PREFIX", "KAFKA_BROKERS", "CATALOG_PATH", "ORDERS_FILE"} {
		t.Setenv(k, "")
	}
	return &cli{t: t, orders: filepath.Join(t.TempDir(), "orders.json")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--env", filepath.Join(c.t.TempDir(), "missing.env"),
		"--orders-file", c.orders,
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestSearch(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("search", "fizzy")
	require.NoError(t, err)
	assert.Equal(t, "Found the following items:\n- Coca-Cola Original (ID: bev-001): ₹40\n", out)

	out, err = c.run("search", "calcium", "--diet", "vegan")
	require.NoError(t, err)
	assert.Equal(t, "No matching products found. Try a different search term.\n", out)
}

func TestFilter(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("filter", "--category", "vegetables", "--color", "red", "--max-price", "35")
	require.NoError(t, err)
	assert.Contains(t, out, "veg-002")
	assert.NotContains(t, out, "veg-001")

	_, err = c.run("filter", "--min-price", "cheap")
	require.ErrorIs(t, err, e.ErrInvalidPrice)
}

func TestOrderFlow(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("last")
	require.NoError(t, err)
	assert.Equal(t, "No recent orders found.\n", out)

	out, err = c.run("order", "dairy-001:2", "bakery-001", "ghost-404")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Order placed successfully! Order ID: BLK-"), out)
	assert.Contains(t, out, "Total: ₹99.")

	out, err = c.run("last")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: ₹99")
	assert.Contains(t, out, "Items: 2x Amul Taaza Fresh Milk, 1x Britannia White Bread")

	out, err = c.run("orders")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "You have 1 order.\n- Order BLK-"), out)
}

func TestOrder_NoValidItems(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("order", "ghost-1", "ghost-2")
	require.ErrorIs(t, err, e.ErrNoValidItems)

	out, err := c.run("orders")
	require.NoError(t, err)
	assert.Equal(t, "No orders found.\n", out)
}

func TestParseItems(t *testing.T) {
	items := parseItems([]string{"dairy-001:3", " bakery-001 "}, map[string]string{"size": "large"})

	require.Len(t, items, 2)
	assert.Equal(t, "dairy-001", items[0].ProductID)
	assert.Equal(t, "3", items[0].Quantity)
	assert.Equal(t, "bakery-001", items[1].ProductID)
	assert.Nil(t, items[1].Quantity)
	assert.Equal(t, "large", items[1].Options["size"])
}

func TestParseItems_IDWithColon(t *testing.T) {
	items := parseItems([]string{"pack:500g:2", "combo:breakfast:"}, nil)

	require.Len(t, items, 2)
	assert.Equal(t, "pack:500g", items[0].ProductID)
	assert.Equal(t, "2", items[0].Quantity)
	assert.Equal(t, "combo:breakfast", items[1].ProductID)
	assert.Equal(t, "", items[1].Quantity)
}

func TestCacheClear(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Search cache is not configured.\n", out)

	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())
	require.NoError(t, mr.Set("merchant:search:1f2e", `{"key":"q=milk|diet=","product_ids":["dairy-001"]}`))
	require.NoError(t, mr.Set("merchant:other", "kept"))

	out, err = c.run("cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Search cache cleared.\n", out)
	assert.False(t, mr.Exists("merchant:search:1f2e"))
	assert.True(t, mr.Exists("merchant:other"))
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"size=large", " sugar = none "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"size": "large", "sugar": "none"}, opts)

	_, err = parseOptions([]string{"broken"})
	require.Error(t, err)

	opts, err = parseOptions(nil)
	require.NoError(t, err)
	assert.Nil(t, opts)
}
