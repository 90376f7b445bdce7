package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ROCKERZ109/lillasure-website/internal/adapter/http/middleware"
	"github.com/ROCKERZ109/lillasure-website/internal/logging"
)

type Handlers struct {
	Catalog     *CatalogHandler
	Cart        *CartHandler
	Pickup      *PickupHandler
	Checkout    *CheckoutHandler
	Fettisdagen *FettisdagenHandler
	Admin       *AdminHandler
	Token       *TokenHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", h.Token.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.GET("/products", h.Catalog.GetProducts)

		v1.GET("/cart", h.Cart.GetCart)
		v1.POST("/cart/items", h.Cart.AddItem)
		v1.PATCH("/cart/items", h.Cart.SetQuantity)
		v1.DELETE("/cart/items", h.Cart.RemoveItem)

		v1.GET("/pickup/dates", h.Pickup.GetDates)
		v1.GET("/pickup/times", h.Pickup.GetTimes)
		v1.GET("/pickup/cutoff", h.Pickup.GetCutoff)

		v1.GET("/checkout", h.Checkout.GetState)
		v1.POST("/checkout/advance", h.Checkout.Advance)
		v1.POST("/checkout/back", h.Checkout.Back)
		v1.PUT("/checkout/pickup", h.Checkout.SelectPickup)
		v1.PUT("/checkout/details", h.Checkout.SetDetails)
		v1.POST("/checkout/submit", h.Checkout.Submit)

		v1.GET("/fettisdagen", h.Fettisdagen.GetOverview)
		v1.POST("/fettisdagen/submit", h.Fettisdagen.Submit)
	}

	admin := r.Group("/v1/admin")
	{
		admin.GET("/orders", authz.Require("orders.read"), h.Admin.GetOrders)
		admin.PATCH("/orders/:id/status", authz.Require("orders.write"), h.Admin.UpdateStatus)
	}

	return r
}
