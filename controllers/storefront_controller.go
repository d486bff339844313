package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront/catalog"
	apperrors "github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/models"
)

// StorefrontController serves the catalog, the header badge and the cart drawer.
type StorefrontController struct {
	Catalog  *catalog.Catalog
	Shoppers *Shoppers
}

func NewStorefrontController(cat *catalog.Catalog, shoppers *Shoppers) *StorefrontController {
	return &StorefrontController{Catalog: cat, Shoppers: shoppers}
}

func (sc *StorefrontController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetCatalog lists products of the requested category (all by default).
func (sc *StorefrontController) GetCatalog(c *gin.Context) {
	shopper, err := sc.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}

	category := c.DefaultQuery("category", catalog.AllCategories)
	products := sc.Catalog.ByCategory(category)
	view := CatalogView{
		Products:   make([]ProductView, 0, len(products)),
		Categories: sc.Catalog.Categories(),
		Category:   category,
		CartCount:  shopper.Cart.TotalItemCount(),
	}
	for _, p := range products {
		view.Products = append(view.Products, productView(p))
	}
	c.JSON(http.StatusOK, view)
}

func (sc *StorefrontController) GetCart(c *gin.Context) {
	shopper, err := sc.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(shopper))
}

func (sc *StorefrontController) OpenCart(c *gin.Context) {
	sc.transition(c, func(s *Shopper) error { return s.Checkout.OpenCart() })
}

func (sc *StorefrontController) CloseCart(c *gin.Context) {
	sc.transition(c, func(s *Shopper) error { return s.Checkout.CloseCart() })
}

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

// AddItem puts one unit of a product in the cart.
func (sc *StorefrontController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	sc.transition(c, func(s *Shopper) error {
		ok, err := s.Checkout.AddItem(req.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrUnknownProduct
		}
		return nil
	})
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (sc *StorefrontController) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	sc.transition(c, func(s *Shopper) error { return s.Checkout.UpdateQuantity(id, *req.Quantity) })
}

func (sc *StorefrontController) RemoveItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	sc.transition(c, func(s *Shopper) error { return s.Checkout.RemoveItem(id) })
}

type deliveryRequest struct {
	DeliveryMethod string `json:"delivery_method" binding:"required"`
}

func (sc *StorefrontController) SelectDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	sc.transition(c, func(s *Shopper) error {
		return s.Checkout.SelectDelivery(models.DeliveryMethod(req.DeliveryMethod))
	})
}

// transition applies fn to the current shopper and answers with the cart view.
func (sc *StorefrontController) transition(c *gin.Context, fn func(*Shopper) error) {
	shopper, err := sc.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}
	if err := fn(shopper); err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(shopper))
}
