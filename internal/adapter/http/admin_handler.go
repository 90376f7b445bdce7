package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ROCKERZ109/lillasure-website/internal/adapter/repo"
	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/logging"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

// AdminHandler serves the back-office order views and status updates.
// Routes are JWT-gated; see the router.
type AdminHandler struct {
	orders usecase.OrderStore
}

func NewAdminHandler(orders usecase.OrderStore) *AdminHandler {
	return &AdminHandler{orders: orders}
}

// GetOrders lists orders, optionally filtered by ?email= or by
// ?from=YYYY-MM-DD&to=YYYY-MM-DD on the pickup date.
func (h *AdminHandler) GetOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		orders []domain.Order
		err    error
	)
	switch {
	case c.Query("email") != "":
		orders, err = h.orders.GetByEmail(ctx, c.Query("email"))
	case c.Query("from") != "" && c.Query("to") != "":
		orders, err = h.orders.GetByDateRange(ctx, c.Query("from"), c.Query("to"))
	default:
		orders, err = h.orders.GetAll(ctx)
	}
	if err != nil {
		logging.From(c).Error("order listing failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "store_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.orders.UpdateStatus(ctx, c.Param("id"), status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		logging.From(c).Error("status update failed", "order_id", c.Param("id"), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "store_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
