package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yashrajoria/storefront/models"
)

func TestPublishers_FanOutJoinsErrors(t *testing.T) {
	ok := new(MockPublisher)
	bad := new(MockPublisher)
	ok.On("PublishOrderSubmitted", mock.Anything, mock.Anything).Return(nil).Once()
	bad.On("PublishOrderSubmitted", mock.Anything, mock.Anything).Return(errors.New("sns down")).Once()

	err := Publishers{bad, ok}.PublishOrderSubmitted(context.Background(), models.OrderSubmittedEvent{OrderID: "1"})
	assert.EqualError(t, err, "sns down")
	ok.AssertExpectations(t)
	bad.AssertExpectations(t)

	assert.NoError(t, Publishers{}.PublishOrderSubmitted(context.Background(), models.OrderSubmittedEvent{}))
}

func TestRedirect_Take(t *testing.T) {
	var r Redirect
	_, ok := r.Take()
	assert.False(t, ok)

	r.Navigate("https://pay.example/x")
	url, ok := r.Take()
	assert.True(t, ok)
	assert.Equal(t, "https://pay.example/x", url)

	_, ok = r.Take()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	form := models.PaymentData{Name: "A", Email: "a@b.ru", Phone: "1", PaymentMethod: models.PaymentSBP}
	assert.NoError(t, Validate(form, models.DeliveryPickup))
	assert.Error(t, Validate(form, models.DeliveryCourier))

	form.PaymentMethod = "cash"
	assert.Error(t, Validate(form, models.DeliveryPickup))
}
