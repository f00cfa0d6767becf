package dishrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDishRepository implements ports.DishRepository using GORM.
type GormDishRepository struct {
	db *gorm.DB
}

// NewGormDishRepository creates a new GORM dish repository.
func NewGormDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

// Add inserts a dish or overwrites the stored one with the same ID, so that
// seeding the menu on every start is idempotent.
func (r *GormDishRepository) Add(ctx context.Context, d *dish.Dish) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

// Get retrieves a dish by ID.
func (r *GormDishRepository) Get(ctx context.Context, id kernel.UUID) (*dish.Dish, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DishDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dish", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
