package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// LineRequest is one requested dish of a new order, before price resolution.
type LineRequest struct {
	DishID   kernel.UUID
	Quantity int
}

func validateLineRequests(lines []LineRequest) error {
	if len(lines) == 0 {
		return ErrNoLines
	}

	var err error
	for i, l := range lines {
		if idErr := l.DishID.Validate(); idErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d].dishId", i), idErr))
		}
		if l.Quantity < 1 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(fmt.Sprintf("lines[%d].quantity", i), l.Quantity, 1, "unbounded"))
		}
	}
	return err
}

// resolveLines looks up every dish and freezes its current price into an order line.
// Missing dishes surface as *errs.ObjectNotFoundError, unavailable ones as validation errors.
func resolveLines(ctx context.Context, dishes ports.DishRepository, requests []LineRequest) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(requests))
	for _, req := range requests {
		d, err := dishes.Get(ctx, req.DishID)
		if err != nil {
			return nil, err
		}

		if err = d.EnsureOrderable(); err != nil {
			return nil, err
		}

		line, err := order.NewLine(d.ID(), req.Quantity, d.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
