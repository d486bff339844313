package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. Products are defined once at startup and never mutated.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

// CartLine is a product held in the cart together with its quantity.
// The product id identifies the line; a cart never holds two lines for one id.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price × quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
