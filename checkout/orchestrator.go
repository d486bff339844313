// Package checkout drives one session through browsing, the cart drawer,
// the checkout form and order submission.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yashrajoria/storefront/cart"
	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/pricing"
	"go.uber.org/zap"
)

// FallbackFailureMessage is shown when the order service gave no reason.
const FallbackFailureMessage = "Ошибка создания заказа"

// Receipt identifies an accepted order.
type Receipt struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number,omitempty"`
	PaymentURL  string `json:"payment_url,omitempty"`
}

// SubmitError is a rejected submission. Message is what the customer sees.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Err }

// Options carries the optional collaborators of an Orchestrator.
type Options struct {
	Publisher EventPublisher
	Recorder  Recorder
	Logger    *zap.Logger
	// OnTransition is called under the orchestrator lock and must not call back into it.
	OnTransition func(from, to State)
}

// Snapshot is a consistent read of the orchestrator for rendering.
type Snapshot struct {
	State          State                 `json:"state"`
	DeliveryMethod models.DeliveryMethod `json:"delivery_method"`
	LastError      string                `json:"last_error,omitempty"`
	LastReceipt    *Receipt              `json:"last_receipt,omitempty"`
}

type Orchestrator struct {
	mu          sync.Mutex
	state       State
	selected    models.DeliveryMethod
	captured    models.DeliveryMethod
	lastError   string
	lastReceipt *Receipt

	sessionID    string
	cart         *cart.Cart
	identity     UserIdentity
	orders       OrderAPI
	nav          Navigator
	publisher    EventPublisher
	recorder     Recorder
	logger       *zap.Logger
	onTransition func(from, to State)
}

func New(sessionID string, c *cart.Cart, identity UserIdentity, orders OrderAPI, nav Navigator, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		state:        Browsing,
		selected:     models.DefaultDeliveryMethod,
		sessionID:    sessionID,
		cart:         c,
		identity:     identity,
		orders:       orders,
		nav:          nav,
		publisher:    opts.Publisher,
		recorder:     opts.Recorder,
		logger:       logger.With(zap.String("session_id", sessionID)),
		onTransition: opts.OnTransition,
	}
}

// setState must be called with o.mu held.
func (o *Orchestrator) setState(to State) {
	from := o.state
	o.state = to
	o.logger.Debug("checkout transition", zap.Stringer("from", from), zap.Stringer("to", to))
	if o.onTransition != nil {
		o.onTransition(from, to)
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// DeliveryMethod is the method used for pricing: the captured one while
// checking out, the cart selection otherwise.
func (o *Orchestrator) DeliveryMethod() models.DeliveryMethod {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.deliveryLocked()
}

func (o *Orchestrator) deliveryLocked() models.DeliveryMethod {
	if o.state == CheckoutOpen || o.state == Submitting {
		return o.captured
	}
	return o.selected
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	snap := Snapshot{
		State:          o.state,
		DeliveryMethod: o.deliveryLocked(),
		LastError:      o.lastError,
	}
	if o.lastReceipt != nil {
		r := *o.lastReceipt
		snap.LastReceipt = &r
	}
	return snap
}

// Quote prices the cart with the current delivery method.
func (o *Orchestrator) Quote() pricing.Quote {
	return pricing.QuoteFor(o.cart.Lines(), o.DeliveryMethod())
}

func (o *Orchestrator) OpenCart() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case CartOpen:
		return nil
	case Browsing, Success:
		o.setState(CartOpen)
		return nil
	default:
		return &TransitionError{Action: "open cart", From: o.state}
	}
}

func (o *Orchestrator) CloseCart() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case Browsing:
		return nil
	case CartOpen, Success:
		o.setState(Browsing)
		return nil
	default:
		return &TransitionError{Action: "close cart", From: o.state}
	}
}

// SelectDelivery changes the cart's delivery method. Once checkout is open the
// captured method is fixed until the form is closed.
func (o *Orchestrator) SelectDelivery(method models.DeliveryMethod) error {
	if _, ok := models.ParseDeliveryMethod(string(method)); !ok {
		return ErrUnknownDeliveryMethod
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case Browsing, CartOpen, Success:
		o.selected = method
		return nil
	default:
		return &TransitionError{Action: "change delivery method", From: o.state}
	}
}

// AddItem puts one unit of a product in the cart. ok is false for an unknown
// product. The cart is frozen while an order is being submitted.
func (o *Orchestrator) AddItem(productID int) (ok bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.cartEditableLocked("add item"); err != nil {
		return false, err
	}
	return o.cart.Add(productID), nil
}

func (o *Orchestrator) UpdateQuantity(productID, quantity int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.cartEditableLocked("change quantity"); err != nil {
		return err
	}
	return o.cart.UpdateQuantity(productID, quantity)
}

func (o *Orchestrator) RemoveItem(productID int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.cartEditableLocked("remove item"); err != nil {
		return err
	}
	o.cart.Remove(productID)
	return nil
}

// cartEditableLocked must be called with o.mu held.
func (o *Orchestrator) cartEditableLocked(action string) error {
	if o.state == Submitting {
		return &TransitionError{Action: action, From: o.state}
	}
	return nil
}

// ProceedToCheckout opens the checkout form, capturing method as the delivery
// method of the order.
func (o *Orchestrator) ProceedToCheckout(ctx context.Context, method models.DeliveryMethod) error {
	if _, ok := models.ParseDeliveryMethod(string(method)); !ok {
		return ErrUnknownDeliveryMethod
	}
	if o.cart.IsEmpty() {
		return ErrEmptyCart
	}

	o.mu.Lock()
	if o.state != CartOpen {
		from := o.state
		o.mu.Unlock()
		return &TransitionError{Action: "proceed to checkout", From: from}
	}
	o.selected = method
	o.captured = method
	o.lastError = ""
	o.setState(CheckoutOpen)
	o.mu.Unlock()

	o.count(ctx, MetricCartCheckouts, method)
	return nil
}

func (o *Orchestrator) CloseCheckout() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case CheckoutOpen:
		o.lastError = ""
		o.setState(Browsing)
		return nil
	default:
		return &TransitionError{Action: "close checkout", From: o.state}
	}
}

// Submit validates the form and places the order with exactly one request.
// While a submission is in flight further calls fail with ErrSubmitInFlight.
// On success the cart is cleared and, when the order service returned a
// payment URL, the navigator is sent there.
func (o *Orchestrator) Submit(ctx context.Context, data models.PaymentData) (Receipt, error) {
	o.mu.Lock()
	switch o.state {
	case Submitting:
		o.mu.Unlock()
		return Receipt{}, ErrSubmitInFlight
	case CheckoutOpen:
	default:
		from := o.state
		o.mu.Unlock()
		return Receipt{}, &TransitionError{Action: "submit order", From: from}
	}

	method := o.captured
	data = normalize(data)
	if err := Validate(data, method); err != nil {
		o.mu.Unlock()
		return Receipt{}, err
	}
	lines := o.cart.Lines()
	if len(lines) == 0 {
		o.mu.Unlock()
		return Receipt{}, ErrEmptyCart
	}
	o.lastError = ""
	o.setState(Submitting)
	o.mu.Unlock()

	req := clients.OrderRequest{
		Items:           clients.NewOrderItems(lines),
		DeliveryMethod:  string(method),
		PaymentMethod:   string(data.PaymentMethod),
		CustomerName:    data.Name,
		CustomerEmail:   data.Email,
		CustomerPhone:   data.Phone,
		DeliveryAddress: data.Address,
		Total:           clients.Amount(pricing.Total(lines, method)),
	}
	if o.identity != nil {
		if uid, ok := o.identity.UserIDNumber(ctx); ok {
			req.UserID = &uid
		}
	}

	start := time.Now()
	created, err := o.orders.CreateOrder(ctx, req)
	o.latency(ctx, time.Since(start), method)

	if err != nil {
		msg := FallbackFailureMessage
		if serverMsg, ok := clients.ServerMessage(err); ok {
			msg = serverMsg
		}

		o.mu.Lock()
		o.lastError = msg
		o.setState(Failed)
		o.setState(CheckoutOpen)
		o.mu.Unlock()

		o.logger.Warn("order submission failed", zap.Error(err), zap.String("delivery_method", string(method)))
		o.count(ctx, MetricOrdersFailed, method)
		return Receipt{}, &SubmitError{Message: msg, Err: err}
	}

	receipt := Receipt{
		OrderID:     created.OrderID.String(),
		OrderNumber: created.OrderNumber,
		PaymentURL:  created.PaymentURL,
	}

	o.mu.Lock()
	o.cart.Clear()
	o.lastReceipt = &receipt
	o.setState(Success)
	o.mu.Unlock()

	o.logger.Info("order placed",
		zap.String("order_id", receipt.OrderID),
		zap.String("order_number", receipt.OrderNumber),
		zap.Bool("payment_redirect", receipt.PaymentURL != ""),
	)
	o.count(ctx, MetricOrdersCreated, method)
	o.publish(ctx, req, receipt, data.PaymentMethod, method)

	if receipt.PaymentURL != "" && o.nav != nil {
		o.nav.Navigate(receipt.PaymentURL)
	}
	return receipt, nil
}

func (o *Orchestrator) publish(ctx context.Context, req clients.OrderRequest, receipt Receipt, payment models.PaymentMethod, method models.DeliveryMethod) {
	if o.publisher == nil {
		return
	}
	count := 0
	for _, item := range req.Items {
		count += item.Quantity
	}
	event := models.OrderSubmittedEvent{
		EventID:        uuid.NewString(),
		Event:          models.EventOrderSubmitted,
		OrderID:        receipt.OrderID,
		OrderNumber:    receipt.OrderNumber,
		SessionID:      o.sessionID,
		UserID:         req.UserID,
		DeliveryMethod: method,
		PaymentMethod:  payment,
		ItemCount:      count,
		Total:          req.Total.String(),
		HasPaymentURL:  receipt.PaymentURL != "",
		Timestamp:      time.Now().UTC(),
	}
	if err := o.publisher.PublishOrderSubmitted(ctx, event); err != nil {
		o.logger.Warn("failed to publish order event", zap.Error(err), zap.String("order_id", receipt.OrderID))
	}
}

func (o *Orchestrator) count(ctx context.Context, metric string, method models.DeliveryMethod) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RecordCount(ctx, metric, map[string]string{"DeliveryMethod": string(method)}); err != nil {
		o.logger.Debug("failed to record metric", zap.String("metric", metric), zap.Error(err))
	}
}

func (o *Orchestrator) latency(ctx context.Context, d time.Duration, method models.DeliveryMethod) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RecordLatency(ctx, MetricOrderSubmitLatency, d, map[string]string{"DeliveryMethod": string(method)}); err != nil {
		o.logger.Debug("failed to record metric", zap.String("metric", MetricOrderSubmitLatency), zap.Error(err))
	}
}
