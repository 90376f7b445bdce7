package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/logging"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

type CartHandler struct {
	carts    *usecase.CartService
	products usecase.ProductStore
}

func NewCartHandler(carts *usecase.CartService, products usecase.ProductStore) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

type cartResp struct {
	Items       []domain.CartItem `json:"items"`
	TotalItems  int               `json:"totalItems"`
	TotalAmount int64             `json:"totalAmount"`
}

func cartView(cart domain.Cart) cartResp {
	return cartResp{
		Items:       cart.Items,
		TotalItems:  cart.TotalItems(),
		TotalAmount: cart.TotalAmount(),
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(h.carts.Get(c.Request.Context(), sessionID(c))))
}

type addItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
}

// AddItem snapshots the product from the live catalog into the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	products, err := h.products.GetProducts(ctx)
	if err != nil {
		logging.From(c).Error("catalog fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable"})
		return
	}

	var found *domain.Product
	for i := range products {
		if products[i].ID == req.ProductID {
			found = &products[i]
			break
		}
	}
	if found == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
		return
	}

	session := sessionID(c)
	if err := h.carts.AddItem(ctx, session, *found, req.VariantID); err != nil {
		switch {
		case errors.Is(err, domain.ErrVariantRequired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "variant_required"})
		case errors.Is(err, domain.ErrUnknownVariant):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown_variant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		}
		return
	}
	c.JSON(http.StatusOK, cartView(h.carts.Get(ctx, session)))
}

type setQuantityReq struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// SetQuantity updates one line; zero or less removes it.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	session := sessionID(c)
	h.carts.SetQuantity(c.Request.Context(), session, req.ProductID, req.VariantID, req.Quantity)
	c.JSON(http.StatusOK, cartView(h.carts.Get(c.Request.Context(), session)))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	session := sessionID(c)
	h.carts.RemoveItem(c.Request.Context(), session, productID, c.Query("variantId"))
	c.JSON(http.StatusOK, cartView(h.carts.Get(c.Request.Context(), session)))
}
