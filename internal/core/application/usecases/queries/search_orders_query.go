package queries

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery lists orders by status, creation time range and user.
// Non-privileged actors only ever see their own orders; the user filter is
// honoured for privileged actors only.
type SearchOrdersQuery struct {
	actor       user.Actor
	statuses    []order.Status
	createdFrom *time.Time
	createdTo   *time.Time
	userID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery validates the filter. An inverted date range is rejected.
func NewSearchOrdersQuery(
	actor user.Actor,
	statuses []order.Status,
	createdFrom, createdTo *time.Time,
	userID *kernel.UUID,
) (SearchOrdersQuery, error) {
	var statusErr error
	for _, s := range statuses {
		statusErr = errors.Join(statusErr, s.Validate())
	}

	var rangeErr error
	if createdFrom != nil && createdTo != nil && createdFrom.After(*createdTo) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("dateFrom",
			fmt.Errorf("%s is after %s", createdFrom.Format(time.RFC3339), createdTo.Format(time.RFC3339)))
	}

	var userErr error
	if userID != nil {
		userErr = userID.Validate()
	}

	if err := errors.Join(actor.Validate(), statusErr, rangeErr, userErr); err != nil {
		return SearchOrdersQuery{}, err
	}

	return SearchOrdersQuery{
		actor:       actor,
		statuses:    slices.Clone(statuses),
		createdFrom: createdFrom,
		createdTo:   createdTo,
		userID:      userID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// Actor returns the searching user.
func (q SearchOrdersQuery) Actor() user.Actor {
	return q.actor
}
