package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/common/logger"
	"github.com/yashrajoria/storefront/models"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Shoppers *Shoppers
}

func NewCheckoutController(shoppers *Shoppers) *CheckoutController {
	return &CheckoutController{Shoppers: shoppers}
}

type proceedRequest struct {
	DeliveryMethod string `json:"delivery_method"`
}

// Proceed opens the checkout form with the posted delivery method, or the
// cart's current selection when none is posted.
func (cc *CheckoutController) Proceed(c *gin.Context) {
	var req proceedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond(c, apperrors.ErrBadRequest.Wrap(err))
			return
		}
	}

	shopper, err := cc.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}

	method := models.DeliveryMethod(req.DeliveryMethod)
	if method == "" {
		method = shopper.Checkout.DeliveryMethod()
	}
	if err := shopper.Checkout.ProceedToCheckout(c.Request.Context(), method); err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(shopper))
}

func (cc *CheckoutController) Close(c *gin.Context) {
	shopper, err := cc.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}
	if err := shopper.Checkout.CloseCheckout(); err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(shopper))
}

// Submit places the order. When the order service asks for payment the
// browser is redirected there; otherwise the receipt is returned.
func (cc *CheckoutController) Submit(c *gin.Context) {
	var form models.PaymentData
	if err := c.ShouldBindJSON(&form); err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = models.DefaultPaymentMethod
	}

	shopper, err := cc.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}

	receipt, err := shopper.Checkout.Submit(c.Request.Context(), form)
	if err != nil {
		respond(c, err)
		return
	}
	logger.Info(c, "checkout submitted", zap.String("order_id", receipt.OrderID))

	if url, ok := shopper.Redirect.Take(); ok {
		c.Redirect(http.StatusSeeOther, url)
		return
	}
	c.JSON(http.StatusCreated, ReceiptView{
		Receipt:     receipt,
		Title:       "Заказ оформлен!",
		Description: fmt.Sprintf("Номер заказа: %s", receipt.OrderID),
	})
}
