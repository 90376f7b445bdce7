package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ROCKERZ109/lillasure-website/internal/logging"
	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

type CatalogHandler struct {
	products usecase.ProductStore
	sched    *schedule.Engine
}

func NewCatalogHandler(products usecase.ProductStore, sched *schedule.Engine) *CatalogHandler {
	return &CatalogHandler{products: products, sched: sched}
}

// GetProducts lists the catalog. ?available=today keeps only products
// baked on today's weekday; specials sort first (day before week).
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	products, err := h.products.GetProducts(ctx)
	if err != nil {
		logging.From(c).Error("catalog fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable"})
		return
	}

	if c.Query("available") == "today" {
		today := schedule.DateOf(time.Now()).Weekday()
		kept := products[:0]
		for _, p := range products {
			if p.Available && p.AvailableOn(today) {
				kept = append(kept, p)
			}
		}
		products = kept
	}

	sort.SliceStable(products, func(i, j int) bool {
		return specialRank(string(products[i].SpecialType)) < specialRank(string(products[j].SpecialType))
	})

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func specialRank(tier string) int {
	switch tier {
	case "day":
		return 0
	case "week":
		return 1
	}
	return 2
}
