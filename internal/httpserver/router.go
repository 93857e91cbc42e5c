package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/service/catalog"
	"balaji-storefront/internal/service/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type catalogService interface {
	Product(id int) (domain.Product, error)
	ByCategory(categoryID string) []domain.Product
	Featured() []domain.Product
	List(q catalog.ListQuery) []domain.Product
	Deals() (sale, hot []domain.Product)
	Categories() []domain.Category
	Category(id string) (domain.Category, error)
}

type visitorService interface {
	Issue(ctx context.Context) (token, visitorID string, err error)
	Lookup(ctx context.Context, token string) (string, error)
	TTLSeconds() int
}

type sessionRegistry interface {
	Open(ctx context.Context, visitorID string) (*session.Session, error)
	Ping(ctx context.Context) error
}

// Deps carries the services the router needs.
type Deps struct {
	Catalog  catalogService
	Visitors visitorService
	Sessions sessionRegistry

	CORSAllowedOrigins []string
	AuthRateRPS        int
	AuthRateBurst      int
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Catalog == nil || deps.Visitors == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: catalog, visitors and sessions are required")
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    logger.Writer(),
		Formatter: accessLogFormatter,
	}), gin.Recovery())
	corsCfg := cors.Config{
		AllowOrigins:     deps.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"*"}
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Sessions))

	h := &handlers{
		logger:   logger,
		catalog:  deps.Catalog,
		visitors: deps.Visitors,
		upgrader: newUpgrader(corsCfg.AllowOrigins),
	}

	api := router.Group("/api")
	api.POST("/visitor", h.issueVisitor)

	api.GET("/categories", h.listCategories)
	api.GET("/categories/:id", h.getCategory)
	api.GET("/products", h.listProducts)
	api.GET("/products/featured", h.featuredProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/deals", h.deals)

	visitor := api.Group("")
	visitor.Use(visitorMiddleware(deps.Visitors, deps.Sessions))

	visitor.GET("/session", h.getSession)

	visitor.GET("/cart", h.getCart)
	visitor.DELETE("/cart", h.clearCart)
	visitor.GET("/cart/events", h.cartEvents)
	visitor.POST("/cart/items", h.addCartItem)
	visitor.PATCH("/cart/items/:id", h.updateCartItem)
	visitor.DELETE("/cart/items/:id", h.removeCartItem)
	visitor.POST("/cart/coupon", h.applyCoupon)
	visitor.DELETE("/cart/coupon", h.removeCoupon)

	limiter := newIPRateLimiter(deps.AuthRateRPS, deps.AuthRateBurst)
	visitor.POST("/auth/login", rateLimitMiddleware(limiter), h.login)
	visitor.POST("/auth/signup", rateLimitMiddleware(limiter), h.signup)
	visitor.POST("/auth/logout", h.logout)

	visitor.GET("/me", h.getMe)
	visitor.PATCH("/me", h.updateMe)
	visitor.GET("/me/addresses", h.listAddresses)
	visitor.POST("/me/addresses", h.addAddress)
	visitor.DELETE("/me/addresses/:id", h.removeAddress)
	visitor.PUT("/me/addresses/:id/default", h.setDefaultAddress)
	visitor.GET("/me/orders", h.listOrders)
	visitor.GET("/me/orders/:ref", h.getOrder)
	visitor.POST("/me/orders/:ref/cancel", h.cancelOrder)
	visitor.GET("/me/exports/orders.xlsx", h.exportOrders)

	visitor.GET("/checkout", h.getCheckout)
	visitor.POST("/checkout/address", h.selectCheckoutAddress)
	visitor.POST("/checkout/addresses", h.addCheckoutAddress)
	visitor.POST("/checkout/payment", h.selectCheckoutPayment)
	visitor.POST("/checkout/next", h.checkoutNext)
	visitor.POST("/checkout/back", h.checkoutBack)
	visitor.POST("/checkout/edit", h.checkoutEdit)
	visitor.POST("/checkout/place-order", h.placeOrder)

	return router, nil
}

type handlers struct {
	logger   *log.Logger
	catalog  catalogService
	visitors visitorService
	upgrader *websocket.Upgrader
}
