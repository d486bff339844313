package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront/cart"
	"github.com/yashrajoria/storefront/catalog"
	"github.com/yashrajoria/storefront/checkout"
	"github.com/yashrajoria/storefront/middleware"
	"github.com/yashrajoria/storefront/session"
	"go.uber.org/zap"
)

// Shopper is everything one browser session owns.
type Shopper struct {
	Session  *session.Session
	Cart     *cart.Cart
	Checkout *checkout.Orchestrator
	Redirect *checkout.Redirect
}

// ShopperDeps are the process-wide collaborators every Shopper shares.
type ShopperDeps struct {
	Catalog   *catalog.Catalog
	Store     session.Store
	Orders    checkout.OrderAPI
	Publisher checkout.EventPublisher
	Recorder  checkout.Recorder
	Logger    *zap.Logger
}

// NewShopperFactory builds shoppers for a session registry.
func NewShopperFactory(deps ShopperDeps) func(sid string) *Shopper {
	return func(sid string) *Shopper {
		sess := session.New(sid, deps.Store)
		c := cart.New(deps.Catalog)
		redirect := &checkout.Redirect{}
		return &Shopper{
			Session:  sess,
			Cart:     c,
			Redirect: redirect,
			Checkout: checkout.New(sid, c, sess, deps.Orders, redirect, checkout.Options{
				Publisher: deps.Publisher,
				Recorder:  deps.Recorder,
				Logger:    deps.Logger,
			}),
		}
	}
}

// Shoppers finds the Shopper of the current request.
type Shoppers struct {
	registry *session.Registry[*Shopper]
}

func NewShoppers(registry *session.Registry[*Shopper]) *Shoppers {
	return &Shoppers{registry: registry}
}

func (s *Shoppers) current(c *gin.Context) (*Shopper, error) {
	sid, err := middleware.GetSessionID(c)
	if err != nil {
		return nil, err
	}
	return s.registry.Get(sid), nil
}
