package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
	productsvc "storefront-bff/internal/service/product"
)

// Pinger is implemented by token stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CatalogService interface {
	List(ctx context.Context, f productsvc.Filters) (*domain.ProductPage, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string, f productsvc.Filters) (*domain.ProductDetail, error)
}

type CartService interface {
	Get(ctx context.Context, id string) (*commercetools.Cart, error)
	Find(ctx context.Context, id string) (*commercetools.Cart, error)
	Create(ctx context.Context, currency string) (*commercetools.Cart, error)
	AddLineItem(ctx context.Context, cartID, productID string, variantID, quantity int) (*commercetools.Cart, error)
	ChangeLineItemQuantity(ctx context.Context, cartID, lineItemID string, quantity int) (*commercetools.Cart, error)
	RemoveLineItem(ctx context.Context, cartID, lineItemID string) (*commercetools.Cart, error)
	ApplyDiscountCode(ctx context.Context, cartID, code string) (*commercetools.Cart, error)
	RemoveDiscountCode(ctx context.Context, cartID, codeID string) (*commercetools.Cart, error)
	SetShippingAddress(ctx context.Context, cartID string, addr commercetools.Address) (*commercetools.Cart, error)
	UnsetShippingAddress(ctx context.Context, cartID string) (*commercetools.Cart, error)
	MatchingShippingMethods(ctx context.Context, cartID string) ([]domain.ShippingMethodView, error)
	SetShippingMethod(ctx context.Context, cartID, methodID string) (*commercetools.Cart, error)
	UnsetShippingMethod(ctx context.Context, cartID string) (*commercetools.Cart, error)
	Totals(ctx context.Context, cartID string) (domain.NormalizedTotals, error)
}

type ProductAdmin interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (*commercetools.Product, error)
	UpdateProduct(ctx context.Context, id string, version int64, actions []commercetools.ProductUpdateAction) (*commercetools.Product, error)
	Publish(ctx context.Context, id string, version int64) (*commercetools.Product, error)
	Unpublish(ctx context.Context, id string, version int64) (*commercetools.Product, error)
	DeleteProduct(ctx context.Context, id string, version int64) (*commercetools.Product, error)
}

type ProjectService interface {
	Get(ctx context.Context) (*commercetools.Project, error)
}

// Deps are the services the router dispatches to. TokenStore is optional and
// only backs the readiness probe.
type Deps struct {
	Catalog     CatalogService
	Carts       CartService
	Admin       ProductAdmin
	Project     ProjectService
	TokenStore  Pinger
	CORSOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.Catalog == nil:
		return errors.New("httpserver: catalog service is required")
	case d.Carts == nil:
		return errors.New("httpserver: cart service is required")
	case d.Admin == nil:
		return errors.New("httpserver: product admin is required")
	case d.Project == nil:
		return errors.New("httpserver: project service is required")
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", cartHeader, requestIDHeader},
		ExposeHeaders:    []string{cartHeader, requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		requestID(),
		gin.LoggerWithWriter(logger.Writer()),
		gin.Recovery(),
		cors.New(corsConfig(deps.CORSOrigins)),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/health", healthHandler)
	router.GET("/readyz", readyHandler(deps.TokenStore))

	storefront := router.Group("/api/storefront")
	{
		products := &catalogHandlers{svc: deps.Catalog}
		storefront.GET("/products", products.list)
		storefront.GET("/products/:idOrSlug", products.get)

		carts := &cartHandlers{svc: deps.Carts, logger: logger}
		cart := storefront.Group("/cart", cartIdentity(deps.Carts, logger))
		cart.GET("", carts.get)
		cart.POST("/line-items", carts.addLineItem)
		cart.PATCH("/line-items/:lineItemId", carts.changeLineItemQuantity)
		cart.DELETE("/line-items/:lineItemId", carts.removeLineItem)
		cart.POST("/discount-codes", carts.applyDiscountCode)
		cart.DELETE("/discount-codes/:codeId", carts.removeDiscountCode)
		cart.POST("/address", carts.setAddress)
		cart.DELETE("/address", carts.unsetAddress)
		cart.GET("/shipping-methods", carts.shippingMethods)
		cart.POST("/set-shipping-method", carts.setShippingMethod)
		cart.POST("/unset-shipping-method", carts.unsetShippingMethod)
		cart.GET("/totals", carts.totals)
	}

	api := router.Group("/api")
	{
		admin := &adminHandlers{svc: deps.Admin}
		api.POST("/products", admin.create)
		api.PATCH("/products/:id", admin.update)
		api.DELETE("/products/:id", admin.delete)
		api.POST("/products/:id/publish", admin.publish)
		api.POST("/products/:id/unpublish", admin.unpublish)

		project := &projectHandlers{svc: deps.Project}
		api.GET("/project", project.get)
	}

	return router, nil
}
