package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
	"github.com/andresuchdata/bakeshop-backend/internal/repository"
)

type ingredientRepository struct {
	db *DB
}

func NewIngredientRepository(db *DB) repository.IngredientRepository {
	return &ingredientRepository{db: db}
}

const ingredientColumns = `
	id, name, category, quantity, unit, threshold,
	cost_per_unit, supplier, location
`

// GetSnapshot loads every ingredient with its full usage history inside one
// repeatable-read transaction, so the analytics engine sees a consistent
// point-in-time view even while orders keep mutating inventory.
func (r *ingredientRepository) GetSnapshot(ctx context.Context) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := r.db.WithTx(ctx, opts, func(tx *sqlx.Tx) error {
		query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY id`
		if err := tx.SelectContext(ctx, &ingredients, query); err != nil {
			return fmt.Errorf("error loading ingredients: %w", err)
		}

		if len(ingredients) == 0 {
			return nil
		}

		eventsQuery := `
			SELECT ingredient_id, occurred_at, kind, quantity, remaining, COALESCE(note, '') AS note
			FROM usage_events
			ORDER BY ingredient_id, occurred_at
		`

		rows, err := tx.QueryxContext(ctx, eventsQuery)
		if err != nil {
			return fmt.Errorf("error loading usage events: %w", err)
		}
		defer rows.Close()

		byID := make(map[int64]*domain.Ingredient, len(ingredients))
		for i := range ingredients {
			byID[ingredients[i].ID] = &ingredients[i]
		}

		for rows.Next() {
			var (
				ingredientID int64
				ev           domain.UsageEvent
			)
			if err := rows.Scan(&ingredientID, &ev.Timestamp, &ev.Kind, &ev.Quantity, &ev.Remaining, &ev.Note); err != nil {
				return fmt.Errorf("error scanning usage event: %w", err)
			}

			if ing, ok := byID[ingredientID]; ok {
				ing.Events = append(ing.Events, ev)
			}
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (r *ingredientRepository) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY name`

	var ingredients []domain.Ingredient
	if err := r.db.SelectContext(ctx, &ingredients, query); err != nil {
		return nil, fmt.Errorf("error listing ingredients: %w", err)
	}

	return ingredients, nil
}

func (r *ingredientRepository) ListLowStock(ctx context.Context) ([]domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE quantity <= threshold ORDER BY quantity / NULLIF(threshold, 0) NULLS FIRST`

	var ingredients []domain.Ingredient
	if err := r.db.SelectContext(ctx, &ingredients, query); err != nil {
		return nil, fmt.Errorf("error listing low stock ingredients: %w", err)
	}

	return ingredients, nil
}
