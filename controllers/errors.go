package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront/account"
	"github.com/yashrajoria/storefront/auth"
	"github.com/yashrajoria/storefront/cart"
	"github.com/yashrajoria/storefront/checkout"
	"github.com/yashrajoria/storefront/clients"
	apperrors "github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/common/validation"
)

// LoginPath is where unauthenticated visitors of protected pages are sent.
const LoginPath = "/login"

var (
	errEmptyCart       = apperrors.New(http.StatusConflict, "Cart is empty", nil)
	errUnknownDelivery = apperrors.New(http.StatusBadRequest, "Unknown delivery method", nil)
	errBadQuantity     = apperrors.New(http.StatusBadRequest, "Quantity must be at least 1", nil)
)

// respond reports err to the client. Not-authenticated becomes a redirect to
// the login page; everything else is attached for ErrorMiddleware to render.
func respond(c *gin.Context, err error) {
	if errors.Is(err, account.ErrNotAuthenticated) {
		c.Redirect(http.StatusSeeOther, LoginPath)
		c.Abort()
		return
	}
	_ = c.Error(toAppError(err))
	c.Abort()
}

func toAppError(err error) *apperrors.Error {
	var (
		verr        *validation.Error
		terr        *checkout.TransitionError
		submitErr   *checkout.SubmitError
		authFailure *auth.Failure
		apiErr      *clients.APIError
		appErr      *apperrors.Error
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &verr):
		return apperrors.ErrValidation.WithDetails(verr.Fields)
	case errors.Is(err, checkout.ErrSubmitInFlight):
		return apperrors.ErrSubmitInFlight
	case errors.As(err, &terr):
		return apperrors.ErrInvalidState.WithDetails(terr.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		return errEmptyCart
	case errors.Is(err, checkout.ErrUnknownDeliveryMethod):
		return errUnknownDelivery
	case errors.Is(err, cart.ErrInvalidQuantity):
		return errBadQuantity
	case errors.As(err, &submitErr):
		return apperrors.New(upstreamStatus(err), submitErr.Message, submitErr.Err)
	case errors.As(err, &authFailure):
		return apperrors.New(upstreamStatus(err), authFailure.Message, authFailure.Err)
	case errors.As(err, &apiErr):
		msg := apperrors.ErrOrdersFailed.Message
		if apiErr.Message != "" {
			msg = apiErr.Message
		}
		return apperrors.New(http.StatusBadGateway, msg, err)
	default:
		return apperrors.ErrInternalServer.Wrap(err)
	}
}

// upstreamStatus passes client errors of the remote functions through and
// reports everything else as a bad gateway.
func upstreamStatus(err error) int {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}
