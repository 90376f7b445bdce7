package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ROCKERZ109/lillasure-website/internal/adapter/http/middleware"
	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/logging"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

type FettisdagenHandler struct {
	svc *usecase.FettisdagenService
}

func NewFettisdagenHandler(svc *usecase.FettisdagenService) *FettisdagenHandler {
	return &FettisdagenHandler{svc: svc}
}

func (h *FettisdagenHandler) GetOverview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ov, err := h.svc.Overview(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoFettisdagenItem) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_available"})
			return
		}
		logging.From(c).Error("fettisdagen overview failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable"})
		return
	}
	c.JSON(http.StatusOK, ov)
}

type fettisdagenOrderReq struct {
	Mandel int    `json:"mandel"`
	Vanilj int    `json:"vanilj"`
	Time   string `json:"time" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *FettisdagenHandler) Submit(c *gin.Context) {
	var req fettisdagenOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated requests
	if idemKey == "" {
		idemKey = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orderID, err := h.svc.Submit(ctx, idemKey, usecase.FettisdagenOrderInput{
		Mandel:     req.Mandel,
		Vanilj:     req.Vanilj,
		PickupTime: req.Time,
		Customer:   domain.CustomerInfo{Name: req.Name, Email: req.Email, Phone: req.Phone},
		Notes:      req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFettisdagenOver):
			c.JSON(http.StatusGone, gin.H{"error": "fettisdagen_over"})
		case errors.Is(err, usecase.ErrBelowMinimumOrder):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "below_minimum"})
		case errors.Is(err, usecase.ErrPickupTimeRequired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "time_required"})
		case errors.Is(err, domain.ErrInvalidCustomer):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_customer"})
		case errors.Is(err, usecase.ErrNoFettisdagenItem):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_available"})
		case errors.Is(err, usecase.ErrSubmitInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "submission_in_flight"})
		default:
			logging.From(c).Error("fettisdagen submission failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "submission_failed"})
		}
		return
	}

	middleware.OrderCreated("fettisdagen")
	c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
}
