// Package pricing derives cart subtotals, delivery fees and totals.
// Everything here is a pure function of its inputs; nothing is cached.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/storefront/models"
)

// Quote is the price breakdown shown in the cart and checkout views.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Subtotal sums price × quantity over lines.
func Subtotal(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.LineTotal())
	}
	return sum
}

// DeliveryFee returns the fixed fee for method. Unknown methods cost nothing.
func DeliveryFee(method models.DeliveryMethod) decimal.Decimal {
	switch method {
	case models.DeliveryCourier:
		return decimal.NewFromInt(500)
	case models.DeliveryPickup:
		return decimal.Zero
	case models.DeliveryExpress:
		return decimal.NewFromInt(1000)
	default:
		return decimal.Zero
	}
}

// Total is Subtotal(lines) + DeliveryFee(method).
func Total(lines []models.CartLine, method models.DeliveryMethod) decimal.Decimal {
	return Subtotal(lines).Add(DeliveryFee(method))
}

// QuoteFor computes the full breakdown for lines and method.
func QuoteFor(lines []models.CartLine, method models.DeliveryMethod) Quote {
	subtotal := Subtotal(lines)
	fee := DeliveryFee(method)
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	}
}
