package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/storefront/models"
)

func line(id int, price int64, qty int) models.CartLine {
	return models.CartLine{
		Product:  models.Product{ID: id, Price: decimal.NewFromInt(price)},
		Quantity: qty,
	}
}

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		method models.DeliveryMethod
		want   int64
	}{
		{models.DeliveryCourier, 500},
		{models.DeliveryPickup, 0},
		{models.DeliveryExpress, 1000},
		{models.DeliveryMethod("teleport"), 0},
		{models.DeliveryMethod(""), 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.True(t, decimal.NewFromInt(tt.want).Equal(DeliveryFee(tt.method)))
		})
	}
}

func TestSubtotal(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(Subtotal(nil)))

	lines := []models.CartLine{line(1, 8990, 1), line(2, 15990, 2)}
	assert.Equal(t, "40970", Subtotal(lines).String())
}

func TestTotal_ExpressExample(t *testing.T) {
	lines := []models.CartLine{line(1, 8990, 1), line(2, 15990, 2)}

	q := QuoteFor(lines, models.DeliveryExpress)
	assert.Equal(t, "40970", q.Subtotal.String())
	assert.Equal(t, "1000", q.DeliveryFee.String())
	assert.Equal(t, "41970", q.Total.String())
	assert.Equal(t, "41970", Total(lines, models.DeliveryExpress).String())
}

func TestTotalIsSubtotalPlusFee(t *testing.T) {
	lines := []models.CartLine{line(3, 4990, 3), line(5, 2990, 1)}
	methods := append(append([]models.DeliveryMethod{}, models.DeliveryMethods...), "unknown")

	for _, m := range methods {
		want := Subtotal(lines).Add(DeliveryFee(m))
		assert.True(t, want.Equal(Total(lines, m)), string(m))
	}
}

func TestFractionalPrices(t *testing.T) {
	lines := []models.CartLine{{
		Product:  models.Product{ID: 9, Price: decimal.RequireFromString("199.99")},
		Quantity: 3,
	}}
	assert.Equal(t, "1099.97", Total(lines, models.DeliveryCourier).String())
}
