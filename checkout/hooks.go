package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/models"
)

// Business metric names.
const (
	MetricCartCheckouts      = "CartCheckouts"
	MetricOrdersCreated      = "OrdersCreated"
	MetricOrdersFailed       = "OrdersFailed"
	MetricOrderSubmitLatency = "OrderSubmitLatency"
)

// OrderAPI creates orders on the remote order service.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req clients.OrderRequest) (clients.OrderCreated, error)
}

// UserIdentity supplies the signed-in user's numeric id, if there is one.
type UserIdentity interface {
	UserIDNumber(ctx context.Context) (int64, bool)
}

// Navigator moves the browser to another location.
type Navigator interface {
	Navigate(url string)
}

// EventPublisher announces accepted orders.
type EventPublisher interface {
	PublishOrderSubmitted(ctx context.Context, event models.OrderSubmittedEvent) error
}

// Recorder records business metrics. The CloudWatch metrics client satisfies it.
type Recorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
}

// Publishers fans an event out to every publisher and joins their errors.
type Publishers []EventPublisher

func (p Publishers) PublishOrderSubmitted(ctx context.Context, event models.OrderSubmittedEvent) error {
	var errs []error
	for _, pub := range p {
		if err := pub.PublishOrderSubmitted(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Redirect is a Navigator that remembers the last requested location until
// the HTTP layer takes it and answers with a redirect.
type Redirect struct {
	mu  sync.Mutex
	url string
}

func (r *Redirect) Navigate(url string) {
	r.mu.Lock()
	r.url = url
	r.mu.Unlock()
}

// Take returns the pending location and forgets it.
func (r *Redirect) Take() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	url := r.url
	r.url = ""
	return url, url != ""
}
