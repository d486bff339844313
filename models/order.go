package models

import "github.com/shopspring/decimal"

// PaymentStatus is the server-side payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusShipped    PaymentStatus = "shipped"
	PaymentStatusDelivered  PaymentStatus = "delivered"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

// DisplayName returns the account page label, or the raw value when unknown.
func (s PaymentStatus) DisplayName() string {
	switch s {
	case PaymentStatusPending:
		return "Ожидает оплаты"
	case PaymentStatusPaid:
		return "Оплачен"
	case PaymentStatusProcessing:
		return "В обработке"
	case PaymentStatusShipped:
		return "Отправлен"
	case PaymentStatusDelivered:
		return "Доставлен"
	case PaymentStatusCancelled:
		return "Отменён"
	default:
		return string(s)
	}
}

// OrderItem is a line of a placed order as the order service stores it.
type OrderItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is owned by the order service; the storefront only reads it.
// Enum fields keep whatever the server sent so unknown values can be shown raw.
type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Items          []OrderItem     `json:"items"`
	CreatedAt      string          `json:"created_at"`
}
