package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

type InventoryLister interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	ListLowStock(ctx context.Context) ([]domain.Ingredient, error)
}

type InventoryHandler struct {
	service InventoryLister
}

func NewInventoryHandler(service InventoryLister) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.service.ListIngredients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  ingredients,
		"total": len(ingredients),
	})
}

// ListLowStock returns ingredients at or below their reorder threshold.
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	ingredients, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list low stock ingredients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  ingredients,
		"total": len(ingredients),
	})
}
