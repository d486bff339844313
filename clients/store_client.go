// Package clients talks to the remote functions the storefront depends on:
// login, registration, order creation and order listing.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/storefront/models"
)

// APIError is a non-2xx answer from a remote function.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error (status %d)", e.StatusCode)
	}
	return e.Message
}

// ServerMessage returns the server-supplied error text of err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// Endpoints are the remote function URLs. Each one is configured on its own.
type Endpoints struct {
	Login       string
	Register    string
	CreateOrder string
	ListOrders  string
}

type StoreClient struct {
	endpoints  Endpoints
	httpClient *http.Client
}

func NewStoreClient(endpoints Endpoints, timeout time.Duration) *StoreClient {
	return &StoreClient{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what a successful login returns.
type LoginResponse struct {
	UserID json.Number `json:"user_id"`
	Email  string      `json:"email"`
}

func (c *StoreClient) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, c.endpoints.Login, credentials{email, password}, &resp); err != nil {
		return LoginResponse{}, fmt.Errorf("login: %w", err)
	}
	return resp, nil
}

func (c *StoreClient) Register(ctx context.Context, email, password string) error {
	if err := c.doRequest(ctx, http.MethodPost, c.endpoints.Register, credentials{email, password}, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// OrderItem is a cart line as sent with a new order.
type OrderItem struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image,omitempty"`
	Category string      `json:"category,omitempty"`
	Quantity int         `json:"quantity"`
}

// OrderRequest is the body of an order creation call.
// UserID is null for guests.
type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	DeliveryMethod  string      `json:"delivery_method"`
	PaymentMethod   string      `json:"payment_method"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	Total           json.Number `json:"total"`
	UserID          *int64      `json:"user_id"`
}

// OrderID is the server's opaque order identifier. It arrives as a JSON
// number or string and is kept as text either way.
type OrderID string

func (id OrderID) String() string { return string(id) }

func (id *OrderID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("order_id: %w", err)
		}
		*id = OrderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("order_id: %w", err)
	}
	*id = OrderID(n.String())
	return nil
}

// OrderCreated is the answer to a successful order creation.
type OrderCreated struct {
	OrderID     OrderID `json:"order_id"`
	OrderNumber string  `json:"order_number,omitempty"`
	PaymentURL  string  `json:"payment_url,omitempty"`
}

// NewOrderItems converts cart lines to their wire form.
func NewOrderItems(lines []models.CartLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ID:       l.ID,
			Name:     l.Name,
			Price:    Amount(l.Price),
			Image:    l.Image,
			Category: l.Category,
			Quantity: l.Quantity,
		})
	}
	return items
}

// Amount renders a decimal as a bare JSON number.
func Amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func (c *StoreClient) CreateOrder(ctx context.Context, req OrderRequest) (OrderCreated, error) {
	var resp OrderCreated
	if err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateOrder, req, &resp); err != nil {
		return OrderCreated{}, fmt.Errorf("create order: %w", err)
	}
	return resp, nil
}

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
}

func (c *StoreClient) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	u, err := url.Parse(c.endpoints.ListOrders)
	if err != nil {
		return nil, fmt.Errorf("list orders: parse url: %w", err)
	}
	q := u.Query()
	q.Set("user_id", userID)
	u.RawQuery = q.Encode()

	var resp ordersResponse
	if err := c.doRequest(ctx, http.MethodGet, u.String(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return resp.Orders, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *StoreClient) doRequest(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(respBytes, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Error}
	}

	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
