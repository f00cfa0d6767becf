package ports

import (
	"context"

	"foodorder/internal/core/domain/model/failure"
)

// FailureRepository is the write-only failure log.
type FailureRepository interface {
	Add(ctx context.Context, record *failure.Record) error
}
