package memory

import (
	"context"

	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// DishRepository implements ports.DishRepository over a Store.
type DishRepository struct {
	uow *UnitOfWork
}

func (r *DishRepository) Add(_ context.Context, d *dish.Dish) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.uow.write(func(cs *changeSet) { cs.dishes[d.ID().Bytes()] = d })
	return nil
}

func (r *DishRepository) Get(_ context.Context, id kernel.UUID) (*dish.Dish, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	d, ok := r.uow.lookupDish(id.Bytes())
	if !ok {
		return nil, errs.NewObjectNotFoundError("dish", id.String())
	}
	return d, nil
}
