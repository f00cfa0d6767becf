package memory

import (
	"context"

	"foodorder/internal/core/domain/model/failure"
)

// FailureRepository appends to the store's failure log.
type FailureRepository struct {
	uow *UnitOfWork
}

func (r *FailureRepository) Add(_ context.Context, record *failure.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	r.uow.write(func(cs *changeSet) { cs.failures = append(cs.failures, record) })
	return nil
}
