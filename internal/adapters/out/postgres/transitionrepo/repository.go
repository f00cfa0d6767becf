package transitionrepo

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransitionRepository implements ports.TransitionRepository using GORM.
type GormTransitionRepository struct {
	db *gorm.DB
}

// NewGormTransitionRepository creates a new GORM transition repository.
func NewGormTransitionRepository(db *gorm.DB) *GormTransitionRepository {
	return &GormTransitionRepository{db: db}
}

// Add enqueues a pending transition.
func (r *GormTransitionRepository) Add(ctx context.Context, t *transition.PendingTransition) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists the processed flag.
func (r *GormTransitionRepository) Update(ctx context.Context, t *transition.PendingTransition) error {
	if err := t.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TransitionDTO{}).
		Where("id = ?", t.ID().Bytes()).
		Update("processed", t.IsProcessed())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transition", t.ID().String())
	}

	return nil
}

// GetForUpdate retrieves an entry holding a row lock until the transaction ends.
func (r *GormTransitionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transition.PendingTransition, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransitionDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transition", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDueUnprocessed returns unprocessed entries due at or before now, oldest first.
func (r *GormTransitionRepository) GetDueUnprocessed(ctx context.Context, now time.Time) ([]*transition.PendingTransition, error) {
	var dtos []TransitionDTO
	err := r.db.WithContext(ctx).
		Where("processed = ? AND due_at <= ?", false, now).
		Order("due_at ASC").
		Order("seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetUnprocessedByOrder returns the unprocessed entries of one order.
func (r *GormTransitionRepository) GetUnprocessedByOrder(ctx context.Context, orderID kernel.UUID) ([]*transition.PendingTransition, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND processed = ?", orderID.Bytes(), false).
		Order("seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []TransitionDTO) ([]*transition.PendingTransition, error) {
	out := make([]*transition.PendingTransition, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}
