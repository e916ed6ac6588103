// Package presenter формирует ответы, которые агент может произнести дословно.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/shopspring/decimal"
)

// NoValidItems — ответ на заказ, в котором не осталось ни одной позиции.
const NoValidItems = "No valid items in order."

// Money печатает сумму с символом валюты: ₹27, ₹12.50, USD 3.
func Money(amount decimal.Decimal, currency string) string {
	value := amount.String()
	if !amount.Equal(amount.Truncate(0)) {
		value = amount.StringFixed(2)
	}

	if strings.EqualFold(currency, "INR") || currency == "" {
		return "₹" + value
	}
	return strings.ToUpper(currency) + " " + value
}

func Products(products []domain.Product) string {
	if len(products) == 0 {
		return "No matching products found. Try a different search term."
	}

	var sb strings.Builder
	sb.WriteString("Found the following items:\n")
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s (ID: %s): %s\n", p.Name, p.ID, Money(p.Price, p.Currency))
	}
	return sb.String()
}

func Product(p *domain.Product) string {
	return fmt.Sprintf("%s (ID: %s): %s", p.Name, p.ID, Money(p.Price, p.Currency))
}

func OrderPlaced(o *domain.Order) string {
	return fmt.Sprintf("Order placed successfully! Order ID: %s. Total: %s.", o.ID, Money(o.TotalAmount, o.Currency))
}

func ItemsSummary(o *domain.Order) string {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

func LastOrder(o *domain.Order) string {
	if o == nil {
		return "No recent orders found."
	}

	return fmt.Sprintf("Last order (%s) placed on %s:\nTotal: %s\nItems: %s",
		o.ID, o.CreatedAt.Format(time.RFC3339), Money(o.TotalAmount, o.Currency), ItemsSummary(o))
}

func Order(o *domain.Order) string {
	return fmt.Sprintf("Order %s is %s. Total: %s. Items: %s.",
		o.ID, o.Status, Money(o.TotalAmount, o.Currency), ItemsSummary(o))
}

func Orders(orders []domain.Order) string {
	switch len(orders) {
	case 0:
		return "No orders found."
	case 1:
		return "You have 1 order."
	default:
		return fmt.Sprintf("You have %d orders.", len(orders))
	}
}

func Context(snap *usecase.ContextSnapshot) string {
	var parts []string
	if len(snap.Diet) > 0 {
		parts = append(parts, "diet: "+strings.Join(snap.Diet, ", "))
	}
	if len(snap.Likes) > 0 {
		parts = append(parts, "likes: "+strings.Join(snap.Likes, ", "))
	}

	if len(parts) == 0 {
		return "No preferences set."
	}
	return "Current preferences: " + strings.Join(parts, "; ") + "."
}
