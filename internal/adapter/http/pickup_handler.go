package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
)

// PickupHandler exposes the availability engine read-only.
type PickupHandler struct {
	sched *schedule.Engine
}

func NewPickupHandler(sched *schedule.Engine) *PickupHandler {
	return &PickupHandler{sched: sched}
}

func (h *PickupHandler) GetDates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dates": h.sched.PickupDates(time.Now())})
}

func (h *PickupHandler) GetTimes(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_required"})
		return
	}
	times, err := h.sched.PickupTimes(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "times": times})
}

func (h *PickupHandler) GetCutoff(c *gin.Context) {
	c.JSON(http.StatusOK, h.sched.Cutoff(time.Now()))
}
