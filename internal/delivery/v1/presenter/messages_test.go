package presenter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹27", Money(decimal.NewFromInt(27), "INR"))
	assert.Equal(t, "₹12.50", Money(decimal.RequireFromString("12.5"), ""))
	assert.Equal(t, "USD 3", Money(decimal.NewFromInt(3), "usd"))
}

func TestProducts(t *testing.T) {
	assert.Equal(t, "No matching products found. Try a different search term.", Products(nil))

	got := Products([]domain.Product{
		{ID: "dairy-001", Name: "Amul Taaza Fresh Milk", Price: decimal.NewFromInt(27), Currency: "INR"},
		{ID: "snack-001", Name: "Lays India's Magic Masala", Price: decimal.NewFromInt(20), Currency: "INR"},
	})
	assert.Equal(t, "Found the following items:\n"+
		"- Amul Taaza Fresh Milk (ID: dairy-001): ₹27\n"+
		"- Lays India's Magic Masala (ID: snack-001): ₹20\n", got)
}

func TestProduct(t *testing.T) {
	p := &domain.Product{ID: "bev-001", Name: "Coca-Cola Original", Price: decimal.RequireFromString("40"), Currency: "INR"}
	assert.Equal(t, "Coca-Cola Original (ID: bev-001): ₹40", Product(p))
}

func TestOrderMessages(t *testing.T) {
	cart := domain.NewCart()
	cart.AddItem("dairy-001", "Amul Taaza Fresh Milk", decimal.NewFromInt(27), 2, "")
	cart.AddItem("bakery-001", "Britannia White Bread", decimal.NewFromInt(45), 1, "")
	order := domain.NewOrderFromCart("BLK-0A1B2C3D", cart, "INR", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "Order placed successfully! Order ID: BLK-0A1B2C3D. Total: ₹99.", OrderPlaced(order))
	assert.Equal(t, "2x Amul Taaza Fresh Milk, 1x Britannia White Bread", ItemsSummary(order))
	assert.Equal(t, "Last order (BLK-0A1B2C3D) placed on 2025-05-01T10:00:00Z:\n"+
		"Total: ₹99\n"+
		"Items: 2x Amul Taaza Fresh Milk, 1x Britannia White Bread", LastOrder(order))
	assert.Equal(t, "No recent orders found.", LastOrder(nil))
	assert.Equal(t, "Order BLK-0A1B2C3D is placed. Total: ₹99. Items: 2x Amul Taaza Fresh Milk, 1x Britannia White Bread.", Order(order))

	assert.Equal(t, "No orders found.", Orders(nil))
	assert.Equal(t, "You have 2 orders.", Orders([]domain.Order{*order, *order}))
}

func TestContext(t *testing.T) {
	assert.Equal(t, "No preferences set.", Context(usecase.NewContextSnapshot("s1", nil, nil)))
	assert.Equal(t, "Current preferences: diet: vegan, jain.",
		Context(usecase.NewContextSnapshot("s1", []string{"vegan", "jain"}, nil)))
	assert.Equal(t, "Current preferences: diet: vegan; likes: masala.",
		Context(usecase.NewContextSnapshot("s1", []string{"vegan"}, []string{"masala"})))
}
