package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/storefront/common/errors"
	commonmw "github.com/yashrajoria/storefront/common/middleware"
	"github.com/yashrajoria/storefront/controllers"
	"github.com/yashrajoria/storefront/middleware"
	"github.com/yashrajoria/storefront/session"
	"go.uber.org/zap"
)

// Handlers groups the controllers the router dispatches to.
type Handlers struct {
	Storefront *controllers.StorefrontController
	Checkout   *controllers.CheckoutController
	Account    *controllers.AccountController
	Auth       *controllers.AuthController
}

type Options struct {
	Logger       *zap.Logger
	Metrics      commonmw.MetricsRecorder
	Issuer       *session.TokenIssuer
	SecureCookie bool
	CORSOrigins  []string
	AuthLimiter  *commonmw.RateLimiter
}

// NewRouter builds the gin engine with the global middleware chain and all routes.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"http://localhost:3000"}
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(commonmw.RequestID())
	r.Use(commonmw.RequestLogger(opts.Logger))
	r.Use(commonmw.Metrics(opts.Metrics, "storefront"))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(apperrors.ErrorMiddleware())

	RegisterRoutes(r, h, opts)
	return r
}

func RegisterRoutes(r *gin.Engine, h Handlers, opts Options) {
	r.GET("/health", h.Storefront.Health)

	shop := r.Group("/")
	shop.Use(middleware.Session(opts.Issuer, opts.SecureCookie))
	{
		// Catalog and cart drawer
		shop.GET("/catalog", h.Storefront.GetCatalog)
		shop.GET("/cart", h.Storefront.GetCart)
		shop.POST("/cart/open", h.Storefront.OpenCart)
		shop.POST("/cart/close", h.Storefront.CloseCart)
		shop.POST("/cart/items", h.Storefront.AddItem)
		shop.PATCH("/cart/items/:id", h.Storefront.UpdateItem)
		shop.DELETE("/cart/items/:id", h.Storefront.RemoveItem)
		shop.PUT("/cart/delivery", h.Storefront.SelectDelivery)

		// Checkout form
		shop.POST("/checkout", h.Checkout.Proceed)
		shop.DELETE("/checkout", h.Checkout.Close)
		shop.POST("/checkout/submit", h.Checkout.Submit)

		// Account page
		shop.GET("/account", h.Account.GetAccount)
		shop.POST("/account/logout", h.Account.Logout)
	}

	authGroup := r.Group("/")
	authGroup.Use(middleware.Session(opts.Issuer, opts.SecureCookie))
	if opts.AuthLimiter != nil {
		authGroup.Use(commonmw.RateLimit(opts.AuthLimiter))
	}
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/register", h.Auth.Register)
	}
}
