package dish

import (
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrDishIsNotConstructed is returned for dishes that skipped NewDish.
	ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")

	// ErrDishIsNotAvailable is returned when ordering a dish taken off the menu.
	ErrDishIsNotAvailable = errors.New("dish is not available")
)

// Dish is a menu item.
type Dish struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	available   bool

	isConstructed bool
}

// NewDish validates and creates a dish.
func NewDish(id kernel.UUID, name, description string, price kernel.Money, available bool) (*Dish, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(id.Validate(), price.Validate(), nameErr); err != nil {
		return nil, err
	}

	return &Dish{
		id:            id,
		name:          name,
		description:   description,
		price:         price,
		available:     available,
		isConstructed: true,
	}, nil
}

// Validate ensures the dish was created through NewDish.
func (d *Dish) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDishIsNotConstructed
	}
	return nil
}

// ID returns the dish identifier.
func (d *Dish) ID() kernel.UUID {
	return d.id
}

// Name returns the menu name.
func (d *Dish) Name() string {
	return d.name
}

// Description returns the menu description, possibly empty.
func (d *Dish) Description() string {
	return d.description
}

// Price is the current menu price. Order lines copy it at order time.
func (d *Dish) Price() kernel.Money {
	return d.price
}

// IsAvailable reports whether the dish can currently be ordered.
func (d *Dish) IsAvailable() bool {
	return d.available
}

// EnsureOrderable returns ErrDishIsNotAvailable wrapped in a validation
// error for dishes that cannot be ordered.
func (d *Dish) EnsureOrderable() error {
	if !d.available {
		return errs.NewValueIsInvalidErrorWithCause("dish", fmt.Errorf("%w: %s", ErrDishIsNotAvailable, d.name))
	}
	return nil
}
