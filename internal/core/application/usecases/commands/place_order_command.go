package commands

import (
	"errors"
	"slices"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand requests an order that starts processing immediately.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, actor, []LineRequest{{DishID: pizzaID, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); errors.Is(err, ErrCapacityExceeded) {
//	    // kitchen is full, ask the user to retry later
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   user.Actor
	lines   []LineRequest

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the request shape. Dish existence and
// availability are checked by the handler.
func NewPlaceOrderCommand(orderID kernel.UUID, actor user.Actor, lines []LineRequest) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the placing user.
func (c PlaceOrderCommand) Actor() user.Actor {
	return c.actor
}

// Lines returns a copy of the requested lines.
func (c PlaceOrderCommand) Lines() []LineRequest {
	return slices.Clone(c.lines)
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []LineRequest) error {
	if err := validateLineRequests(lines); err != nil {
		return err
	}
	c.lines = slices.Clone(lines)
	return nil
}
