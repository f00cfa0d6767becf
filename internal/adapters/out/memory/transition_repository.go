package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/pkg/errs"
)

// TransitionRepository implements ports.TransitionRepository over a Store.
type TransitionRepository struct {
	uow *UnitOfWork
}

func (r *TransitionRepository) Add(_ context.Context, t *transition.PendingTransition) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.lookupTransition(t.ID().Bytes()); ok {
		return ErrDuplicateKey
	}

	row := transitionRowFromDomain(t, r.uow.store.seq.Add(1))
	r.uow.write(func(cs *changeSet) { cs.transitions[row.id.Bytes()] = row })
	return nil
}

func (r *TransitionRepository) Update(_ context.Context, t *transition.PendingTransition) error {
	if err := t.Validate(); err != nil {
		return err
	}
	existing, ok := r.uow.lookupTransition(t.ID().Bytes())
	if !ok {
		return errs.NewObjectNotFoundError("transition", t.ID().String())
	}

	existing.processed = t.IsProcessed()
	r.uow.write(func(cs *changeSet) { cs.transitions[existing.id.Bytes()] = existing })
	return nil
}

func (r *TransitionRepository) GetForUpdate(_ context.Context, id kernel.UUID) (*transition.PendingTransition, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	row, ok := r.uow.lookupTransition(id.Bytes())
	if !ok {
		return nil, errs.NewObjectNotFoundError("transition", id.String())
	}
	return row.toDomain()
}

func (r *TransitionRepository) GetDueUnprocessed(_ context.Context, now time.Time) ([]*transition.PendingTransition, error) {
	rows := slices.DeleteFunc(r.uow.allTransitions(), func(row transitionRow) bool {
		return row.processed || row.dueAt.After(now)
	})
	slices.SortFunc(rows, func(a, b transitionRow) int {
		if c := a.dueAt.Compare(b.dueAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return restoreTransitions(rows)
}

func (r *TransitionRepository) GetUnprocessedByOrder(_ context.Context, orderID kernel.UUID) ([]*transition.PendingTransition, error) {
	rows := slices.DeleteFunc(r.uow.allTransitions(), func(row transitionRow) bool {
		return row.processed || !row.orderID.IsEqual(orderID)
	})
	slices.SortFunc(rows, func(a, b transitionRow) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return restoreTransitions(rows)
}

func restoreTransitions(rows []transitionRow) ([]*transition.PendingTransition, error) {
	out := make([]*transition.PendingTransition, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
