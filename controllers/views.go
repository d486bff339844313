package controllers

import (
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/storefront/checkout"
	"github.com/yashrajoria/storefront/format"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/pricing"
)

type ProductView struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	PriceText string          `json:"price_text"`
}

type CatalogView struct {
	Products   []ProductView `json:"products"`
	Categories []string      `json:"categories"`
	Category   string        `json:"category"`
	CartCount  int           `json:"cart_count"`
}

type LineView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Quantity      int    `json:"quantity"`
	PriceText     string `json:"price_text"`
	LineTotalText string `json:"line_total_text"`
}

type DeliveryOption struct {
	Method   models.DeliveryMethod `json:"method"`
	Label    string                `json:"label"`
	FeeText  string                `json:"fee_text"`
	Selected bool                  `json:"selected"`
}

type CartView struct {
	State           checkout.State        `json:"state"`
	Lines           []LineView            `json:"lines"`
	ItemCount       int                   `json:"item_count"`
	DeliveryMethod  models.DeliveryMethod `json:"delivery_method"`
	DeliveryOptions []DeliveryOption      `json:"delivery_options"`
	Quote           pricing.Quote         `json:"quote"`
	SubtotalText    string                `json:"subtotal_text"`
	DeliveryFeeText string                `json:"delivery_fee_text"`
	TotalText       string                `json:"total_text"`
	LastError       string                `json:"last_error,omitempty"`
	LastReceipt     *checkout.Receipt     `json:"last_receipt,omitempty"`
}

// ReceiptView is the success toast of an order without a payment redirect.
type ReceiptView struct {
	checkout.Receipt
	Title       string `json:"title"`
	Description string `json:"description"`
}

func productView(p models.Product) ProductView {
	return ProductView{
		ID:        p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		Price:     p.Price,
		PriceText: format.Price(p.Price),
	}
}

func cartView(s *Shopper) CartView {
	snap := s.Checkout.Snapshot()
	lines := s.Cart.Lines()
	quote := pricing.QuoteFor(lines, snap.DeliveryMethod)

	view := CartView{
		State:           snap.State,
		Lines:           make([]LineView, 0, len(lines)),
		ItemCount:       s.Cart.TotalItemCount(),
		DeliveryMethod:  snap.DeliveryMethod,
		DeliveryOptions: make([]DeliveryOption, 0, len(models.DeliveryMethods)),
		Quote:           quote,
		SubtotalText:    format.Price(quote.Subtotal),
		DeliveryFeeText: format.Price(quote.DeliveryFee),
		TotalText:       format.Price(quote.Total),
		LastError:       snap.LastError,
		LastReceipt:     snap.LastReceipt,
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, LineView{
			ID:            l.ID,
			Name:          l.Name,
			Image:         l.Image,
			Quantity:      l.Quantity,
			PriceText:     format.Price(l.Price),
			LineTotalText: format.Price(l.LineTotal()),
		})
	}
	for _, m := range models.DeliveryMethods {
		view.DeliveryOptions = append(view.DeliveryOptions, DeliveryOption{
			Method:   m,
			Label:    m.DisplayName(),
			FeeText:  format.Price(pricing.DeliveryFee(m)),
			Selected: m == snap.DeliveryMethod,
		})
	}
	return view
}
