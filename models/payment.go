package models

// PaymentMethod is how the customer pays on the external payment page.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentSBP  PaymentMethod = "sbp"
)

// DefaultPaymentMethod is preselected on the checkout form.
const DefaultPaymentMethod = PaymentCard

// ParsePaymentMethod maps a raw value onto a known payment method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(raw) {
	case PaymentCard, PaymentSBP:
		return PaymentMethod(raw), true
	default:
		return PaymentMethod(raw), false
	}
}

// DisplayName returns the storefront label, or the raw value when unknown.
func (m PaymentMethod) DisplayName() string {
	switch m {
	case PaymentCard:
		return "Банковская карта"
	case PaymentSBP:
		return "СБП"
	default:
		return string(m)
	}
}

// PaymentData is what the checkout form collects. It is built at submission and not kept.
type PaymentData struct {
	Name          string        `json:"name" validate:"required"`
	Email         string        `json:"email" validate:"required,contact_email"`
	Phone         string        `json:"phone" validate:"required"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=card sbp"`
}
