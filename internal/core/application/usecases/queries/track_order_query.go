package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery reads one order on behalf of its owner or a privileged actor.
//
// Example:
//
//	query, err := NewTrackOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, order.ErrAccessDenied) {
//	    // someone else's order
//	}
//	fmt.Printf("Order %s is %s\n", resp.ID, resp.Status)
type TrackOrderQuery struct {
	orderID kernel.UUID
	actor   user.Actor

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery validates the order ID and the asking user.
func NewTrackOrderQuery(orderID kernel.UUID, actor user.Actor) (TrackOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderID returns the order to look up.
func (q TrackOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the asking user.
func (q TrackOrderQuery) Actor() user.Actor {
	return q.actor
}
