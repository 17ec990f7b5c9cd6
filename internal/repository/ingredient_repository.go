// internal/repository/ingredient_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

// IngredientRepository reads inventory state for the analytics engine and
// the admin endpoints.
//
// GetSnapshot must return a consistent view: ingredients and their usage
// events are read inside one transaction so an order accepted mid-report
// cannot show up in one ingredient's history but not another's. The engine
// never re-reads live state during a report run.
type IngredientRepository interface {
	GetSnapshot(ctx context.Context) ([]domain.Ingredient, error)
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	ListLowStock(ctx context.Context) ([]domain.Ingredient, error)
}
