package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ROCKERZ109/lillasure-website/internal/adapter/http/middleware"
	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/logging"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.CheckoutService
}

func NewCheckoutHandler(checkout *usecase.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

func (h *CheckoutHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkout.State(c.Request.Context(), sessionID(c)))
}

// Advance tries to move one step forward. A blocked gate is not an
// internal error: the view carries the reason (conflicts, fettisdagen
// diversion) and comes back as 422.
func (h *CheckoutHandler) Advance(c *gin.Context) {
	view, err := h.checkout.Advance(c.Request.Context(), sessionID(c))
	if err != nil {
		status := http.StatusUnprocessableEntity
		reason := "step_incomplete"
		if errors.Is(err, usecase.ErrFettisdagenDate) {
			reason = "use_fettisdagen_flow"
		}
		c.JSON(status, gin.H{"error": reason, "state": view})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Back(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkout.Back(c.Request.Context(), sessionID(c)))
}

type selectPickupReq struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time"`
}

func (h *CheckoutHandler) SelectPickup(c *gin.Context) {
	var req selectPickupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	view, err := h.checkout.SelectPickup(c.Request.Context(), sessionID(c), req.Date, req.Time)
	if err != nil {
		reason := "invalid_selection"
		switch {
		case errors.Is(err, usecase.ErrDateUnavailable):
			reason = "date_unavailable"
		case errors.Is(err, usecase.ErrSlotUnavailable):
			reason = "time_unavailable"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": reason, "state": view})
		return
	}
	c.JSON(http.StatusOK, view)
}

type detailsReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// SetDetails stores whatever was typed; validation only gates Advance,
// it never errors here.
func (h *CheckoutHandler) SetDetails(c *gin.Context) {
	var req detailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	view := h.checkout.SetDetails(c.Request.Context(), sessionID(c),
		domain.CustomerInfo{Name: req.Name, Email: req.Email, Phone: req.Phone}, req.Notes)
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) Submit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	view, err := h.checkout.Submit(ctx, sessionID(c))
	switch {
	case err == nil:
		middleware.OrderCreated("checkout")
		logging.From(c).Info("checkout complete", "order_id", view.OrderID)
		c.JSON(http.StatusCreated, view)
	case errors.Is(err, usecase.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "submission_in_flight"})
	case errors.Is(err, usecase.ErrNotAtConfirm), errors.Is(err, usecase.ErrCannotAdvance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "checkout_incomplete", "state": view})
	default:
		// Persistence failure: generic and retryable, flow state intact.
		logging.From(c).Error("order submission failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "submission_failed"})
	}
}
