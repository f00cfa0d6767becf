package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// ErrDuplicateKey is returned when Add is called with an ID already stored.
var ErrDuplicateKey = errors.New("duplicate key")

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.lookupOrder(aggregate.ID().Bytes()); ok {
		return ErrDuplicateKey
	}

	row := orderRowFromDomain(aggregate)
	r.uow.write(func(cs *changeSet) { cs.orders[row.id.Bytes()] = row })
	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	existing, ok := r.uow.lookupOrder(aggregate.ID().Bytes())
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	row := orderRowFromDomain(aggregate)
	row.lines = existing.lines
	r.uow.write(func(cs *changeSet) { cs.orders[row.id.Bytes()] = row })
	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	row, ok := r.uow.lookupOrder(id.Bytes())
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return row.toDomain()
}

// GetForUpdate behaves like Get. The transaction lock taken by Begin already
// excludes every other writer.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) Search(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	rows := slices.DeleteFunc(r.uow.allOrders(), func(row orderRow) bool {
		return !matches(row, filter)
	})
	slices.SortFunc(rows, func(a, b orderRow) int {
		return b.createdAt.Compare(a.createdAt)
	})
	return restoreOrders(rows)
}

func (r *OrderRepository) CountActiveByStatusIn(_ context.Context, statuses []order.Status) (int64, error) {
	var n int64
	for _, row := range r.uow.allOrders() {
		if row.active && slices.Contains(statuses, row.status) {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepository) GetDueScheduled(_ context.Context, now time.Time) ([]*order.Order, error) {
	rows := slices.DeleteFunc(r.uow.allOrders(), func(row orderRow) bool {
		return row.status != order.Ordered || row.active || row.scheduledFor == nil || row.scheduledFor.After(now)
	})
	slices.SortFunc(rows, func(a, b orderRow) int {
		return a.scheduledFor.Compare(*b.scheduledFor)
	})
	return restoreOrders(rows)
}

func matches(row orderRow, filter ports.OrderFilter) bool {
	if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, row.status) {
		return false
	}
	if filter.CreatedFrom != nil && row.createdAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && row.createdAt.After(*filter.CreatedTo) {
		return false
	}
	if filter.CreatedBy != nil && !row.createdBy.IsEqual(*filter.CreatedBy) {
		return false
	}
	return true
}

func restoreOrders(rows []orderRow) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
