package account

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/session"
)

type MockOrderLister struct {
	mock.Mock
}

func (m *MockOrderLister) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func signedIn(t *testing.T, id models.Identity) *session.Session {
	t.Helper()
	s := session.New("sid", session.NewMemoryStore())
	require.NoError(t, s.SignIn(context.Background(), id))
	return s
}

func TestLoad_NotAuthenticated(t *testing.T) {
	lister := new(MockOrderLister)
	v := NewViewer(lister, nil)
	store := session.NewMemoryStore()

	_, err := v.Load(context.Background(), session.New("sid", store))
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, store.Set(context.Background(), "sid", session.KeyUserID, "5"))
	_, err = v.Load(context.Background(), session.New("sid", store))
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	lister.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
}

func TestLoad_RendersOrders(t *testing.T) {
	lister := new(MockOrderLister)
	lister.On("ListOrders", mock.Anything, "15").Return([]models.Order{{
		ID:             1,
		OrderNumber:    "ORD-20240305-AB12CD34",
		DeliveryMethod: models.DeliveryPickup,
		PaymentMethod:  models.PaymentMethod("crypto"),
		PaymentStatus:  models.PaymentStatusPaid,
		TotalAmount:    decimal.NewFromInt(40970),
		CreatedAt:      "2024-03-05T10:00:00Z",
		Items: []models.OrderItem{
			{ID: 1, Name: "Наушники", Price: decimal.NewFromInt(8990), Quantity: 1},
			{ID: 2, Name: "Умные часы", Price: decimal.NewFromInt(15990), Quantity: 2},
		},
	}}, nil).Once()

	v := NewViewer(lister, nil)
	page, err := v.Load(context.Background(), signedIn(t, models.Identity{UserID: "15", Email: "ivan@example.ru"}))
	require.NoError(t, err)

	assert.Equal(t, "ivan@example.ru", page.Email)
	require.Len(t, page.Orders, 1)
	o := page.Orders[0]
	assert.Equal(t, "Заказ ORD-20240305-AB12CD34", o.Title)
	assert.Equal(t, "05.03.2024", o.Date)
	assert.Equal(t, "Оплачен", o.StatusLabel)
	assert.Equal(t, "Самовывоз", o.DeliveryMethod)
	assert.Equal(t, "crypto", o.PaymentMethod)
	assert.Equal(t, "40\u00a0970\u00a0₽", o.Total)
	assert.Equal(t, []string{
		"Наушники × 1 = 8\u00a0990\u00a0₽",
		"Умные часы × 2 = 31\u00a0980\u00a0₽",
	}, o.Lines)
	lister.AssertExpectations(t)
}

func TestLoad_EmptyHistory(t *testing.T) {
	lister := new(MockOrderLister)
	lister.On("ListOrders", mock.Anything, "3").Return(nil, nil).Once()

	page, err := NewViewer(lister, nil).Load(context.Background(), signedIn(t, models.Identity{UserID: "3", Email: "a@b.c"}))
	require.NoError(t, err)
	assert.NotNil(t, page.Orders)
	assert.Empty(t, page.Orders)
}

func TestLoad_ServerFailure(t *testing.T) {
	lister := new(MockOrderLister)
	lister.On("ListOrders", mock.Anything, "3").Return(nil, errors.New("timeout")).Once()

	_, err := NewViewer(lister, nil).Load(context.Background(), signedIn(t, models.Identity{UserID: "3", Email: "a@b.c"}))
	assert.EqualError(t, err, "timeout")
}

func TestLogout(t *testing.T) {
	s := signedIn(t, models.Identity{UserID: "3", Email: "a@b.c"})
	v := NewViewer(new(MockOrderLister), nil)

	require.NoError(t, v.Logout(context.Background(), s))
	_, err := v.Load(context.Background(), s)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
