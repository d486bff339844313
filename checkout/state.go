package checkout

import (
	"errors"
	"fmt"
)

// State is where a session is in the browse → cart → checkout flow.
type State int

const (
	Browsing State = iota
	CartOpen
	CheckoutOpen
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case CartOpen:
		return "cart_open"
	case CheckoutOpen:
		return "checkout_open"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText lets views carry the state as its name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrSubmitInFlight        = errors.New("order submission already in progress")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrUnknownDeliveryMethod = errors.New("unknown delivery method")
)

// TransitionError reports an action that is not allowed in the current state.
type TransitionError struct {
	Action string
	From   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}
