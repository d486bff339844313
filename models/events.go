package models

import "time"

// OrderSubmittedEvent is published after the order service accepted a checkout.
type OrderSubmittedEvent struct {
	EventID        string         `json:"event_id"`
	Event          string         `json:"event"`
	OrderID        string         `json:"order_id"`
	OrderNumber    string         `json:"order_number,omitempty"`
	SessionID      string         `json:"session_id"`
	UserID         *int64         `json:"user_id"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	ItemCount      int            `json:"item_count"`
	Total          string         `json:"total"`
	HasPaymentURL  bool           `json:"has_payment_url"`
	Timestamp      time.Time      `json:"timestamp"`
}

// EventOrderSubmitted names OrderSubmittedEvent on the wire.
const EventOrderSubmitted = "order.submitted"
