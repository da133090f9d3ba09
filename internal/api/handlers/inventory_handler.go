package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/estoquelab/stocklens/internal/service"
)

type InventoryHandler struct {
	service *service.DashboardService
}

func NewInventoryHandler(service *service.DashboardService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// parseTargetDays reads the target coverage horizon from the query,
// falling back to 0 (the service substitutes the default). Negative or
// malformed values are not an error; the engine's contract is permissive.
func parseTargetDays(c *gin.Context) float64 {
	value := strings.TrimSpace(c.Query("target_days"))
	if value == "" {
		return 0
	}

	days, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}

	return days
}

func (h *InventoryHandler) GetMetrics(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))

	metrics, err := h.service.GetMetrics(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *InventoryHandler) GetSuggestions(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))

	suggestions, err := h.service.GetSuggestions(c.Request.Context(), date, parseTargetDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute suggestions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

func (h *InventoryHandler) GetOverview(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))

	overview, err := h.service.GetOverview(c.Request.Context(), date, parseTargetDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute overview", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *InventoryHandler) GetAvailableDates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if limit <= 0 {
		limit = 30
	}

	dates, err := h.service.GetAvailableDates(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch available dates", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *InventoryHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate cache", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
