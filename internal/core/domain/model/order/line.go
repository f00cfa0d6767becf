package order

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned for a Line that skipped NewLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one dish of an order with its quantity and the unit price
// captured when the order was created. The price never follows later menu changes.
type Line struct {
	dishID        kernel.UUID
	quantity      int
	unitPrice     kernel.Money
	isConstructed bool
}

// NewLine validates and creates an order line. Quantity must be at least 1.
func NewLine(dishID kernel.UUID, quantity int, unitPrice kernel.Money) (Line, error) {
	if err := errors.Join(
		dishID.Validate(),
		unitPrice.Validate(),
		validateQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return Line{
		dishID:        dishID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}

// DishID returns the ordered dish.
func (l Line) DishID() kernel.UUID {
	return l.dishID
}

// Quantity returns the number of portions, at least one.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the dish price frozen when the order was created.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal is the unit price multiplied by the quantity.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}

// Validate reports lines that skipped NewLine.
func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}
