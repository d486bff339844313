package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an error with the HTTP status it should be reported with.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails returns a copy of e carrying details in its JSON body.
func (e *Error) WithDetails(details interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e wrapping err. Sentinels are never mutated.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrConflict           = New(http.StatusConflict, "Conflict", nil)
	ErrTooManyRequests    = New(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrBadGateway         = New(http.StatusBadGateway, "Bad gateway", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Storefront error types
var (
	ErrValidation     = New(http.StatusBadRequest, "Validation error", nil)
	ErrUnknownProduct = New(http.StatusNotFound, "Product not found", nil)
	ErrInvalidState   = New(http.StatusConflict, "Action not allowed right now", nil)
	ErrSubmitInFlight = New(http.StatusConflict, "Order submission already in progress", nil)
	ErrOrderFailed    = New(http.StatusBadGateway, "Ошибка создания заказа", nil)
	ErrLoginFailed    = New(http.StatusBadGateway, "Login failed", nil)
	ErrRegisterFailed = New(http.StatusBadGateway, "Registration failed", nil)
	ErrOrdersFailed   = New(http.StatusBadGateway, "Failed to load orders", nil)
)

// As extracts an *Error from err. Anything else is reported as an internal error.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.Wrap(err)
}

// HandleError writes err as a JSON response.
func HandleError(w http.ResponseWriter, err error) {
	appErr := As(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	_, _ = w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			appErr := As(c.Errors.Last().Err)
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
