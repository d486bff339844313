package models

// DeliveryMethod is the fulfillment channel chosen at checkout.
type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryExpress DeliveryMethod = "express"
)

// DefaultDeliveryMethod is selected until the customer picks another one.
const DefaultDeliveryMethod = DeliveryCourier

// DeliveryMethods lists the methods in the order the cart offers them.
var DeliveryMethods = []DeliveryMethod{DeliveryCourier, DeliveryPickup, DeliveryExpress}

// ParseDeliveryMethod maps a raw value onto a known method.
// Unknown values are reported as such and never coerced.
func ParseDeliveryMethod(raw string) (DeliveryMethod, bool) {
	switch DeliveryMethod(raw) {
	case DeliveryCourier, DeliveryPickup, DeliveryExpress:
		return DeliveryMethod(raw), true
	default:
		return DeliveryMethod(raw), false
	}
}

// RequiresAddress reports whether checkout must collect a delivery address.
func (m DeliveryMethod) RequiresAddress() bool {
	return m != DeliveryPickup
}

// DisplayName returns the storefront label, or the raw value when the method is unknown.
func (m DeliveryMethod) DisplayName() string {
	switch m {
	case DeliveryCourier:
		return "Курьерская доставка"
	case DeliveryPickup:
		return "Самовывоз"
	case DeliveryExpress:
		return "Экспресс-доставка"
	default:
		return string(m)
	}
}
