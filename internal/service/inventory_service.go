package service

import (
	"context"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
	"github.com/andresuchdata/bakeshop-backend/internal/repository"
)

// InventoryService exposes the read-only ingredient views the admin console
// lists. Inventory mutation lives elsewhere; this service never writes.
type InventoryService struct {
	repo repository.IngredientRepository
}

func NewInventoryService(repo repository.IngredientRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

func (s *InventoryService) ListLowStock(ctx context.Context) ([]domain.Ingredient, error) {
	return s.repo.ListLowStock(ctx)
}
