// Package dishrepo persists the menu.
package dishrepo

import (
	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DishDTO is one menu item.
type DishDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available   bool            `gorm:"not null"`
}

// TableName overrides GORM's default naming convention.
func (DishDTO) TableName() string {
	return "dishes"
}

func fromDomain(d *dish.Dish) DishDTO {
	return DishDTO{
		ID:          d.ID().Bytes(),
		Name:        d.Name(),
		Description: d.Description(),
		Price:       d.Price().Decimal(),
		Available:   d.IsAvailable(),
	}
}

func toDomain(dto DishDTO) (*dish.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return dish.NewDish(id, dto.Name, dto.Description, price, dto.Available)
}
