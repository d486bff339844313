// Package account shows a signed-in customer their order history.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/storefront/format"
	"github.com/yashrajoria/storefront/models"
	"go.uber.org/zap"
)

// ErrNotAuthenticated means the session has no complete identity. Callers
// send the browser to the login page rather than showing an error.
var ErrNotAuthenticated = errors.New("not authenticated")

// OrderLister fetches a user's orders from the order service.
type OrderLister interface {
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// IdentityStore is the session side of the account page.
type IdentityStore interface {
	Identity(ctx context.Context) (models.Identity, bool, error)
	SignOut(ctx context.Context) error
}

// OrderView is one order as the account page renders it.
type OrderView struct {
	ID             int64    `json:"id"`
	OrderNumber    string   `json:"order_number"`
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	Status         string   `json:"status"`
	StatusLabel    string   `json:"status_label"`
	DeliveryMethod string   `json:"delivery_method"`
	PaymentMethod  string   `json:"payment_method"`
	Total          string   `json:"total"`
	Lines          []string `json:"lines"`
}

// Page is the account page for one user.
type Page struct {
	Email  string      `json:"email"`
	Orders []OrderView `json:"orders"`
}

type Viewer struct {
	orders OrderLister
	logger *zap.Logger
}

func NewViewer(orders OrderLister, logger *zap.Logger) *Viewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{orders: orders, logger: logger}
}

// Load reads the session identity and fetches its orders with one request.
func (v *Viewer) Load(ctx context.Context, store IdentityStore) (Page, error) {
	id, ok, err := store.Identity(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("read session identity: %w", err)
	}
	if !ok {
		return Page{}, ErrNotAuthenticated
	}

	orders, err := v.orders.ListOrders(ctx, id.UserID)
	if err != nil {
		v.logger.Warn("failed to load orders", zap.String("user_id", id.UserID), zap.Error(err))
		return Page{}, err
	}

	page := Page{Email: id.Email, Orders: make([]OrderView, 0, len(orders))}
	for _, o := range orders {
		page.Orders = append(page.Orders, RenderOrder(o))
	}
	return page, nil
}

// Logout forgets the session identity. The order service is not involved.
func (v *Viewer) Logout(ctx context.Context, store IdentityStore) error {
	if err := store.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// RenderOrder maps an order onto its display form. Unknown enum values are shown raw.
func RenderOrder(o models.Order) OrderView {
	lines := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, fmt.Sprintf("%s × %d = %s", item.Name, item.Quantity, format.Price(lineTotal)))
	}

	return OrderView{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Title:          "Заказ " + o.OrderNumber,
		Date:           format.Date(o.CreatedAt),
		Status:         string(o.PaymentStatus),
		StatusLabel:    o.PaymentStatus.DisplayName(),
		DeliveryMethod: o.DeliveryMethod.DisplayName(),
		PaymentMethod:  o.PaymentMethod.DisplayName(),
		Total:          format.Price(o.TotalAmount),
		Lines:          lines,
	}
}
