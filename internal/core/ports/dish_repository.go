package ports

import (
	"context"

	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"
)

// DishRepository resolves menu items for order lines.
type DishRepository interface {
	// Add stores a dish. Used by menu seeding.
	Add(ctx context.Context, d *dish.Dish) error

	// Get retrieves a dish by ID. Returns *errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*dish.Dish, error)
}
