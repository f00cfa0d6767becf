package failurerepo

import (
	"context"

	"foodorder/internal/core/domain/model/failure"

	"gorm.io/gorm"
)

// GormFailureRepository implements ports.FailureRepository using GORM.
type GormFailureRepository struct {
	db *gorm.DB
}

// NewGormFailureRepository creates a new GORM failure repository.
func NewGormFailureRepository(db *gorm.DB) *GormFailureRepository {
	return &GormFailureRepository{db: db}
}

// Add appends a record to the log.
func (r *GormFailureRepository) Add(ctx context.Context, record *failure.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
