// Package transitionrepo persists the queue of pending status transitions.
package transitionrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"

	"github.com/google/uuid"
)

// TransitionDTO is one queue entry. Seq is assigned by the database and
// breaks ties between entries due at the same instant.
type TransitionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus int       `gorm:"type:smallint;not null"`
	Target     int       `gorm:"type:smallint;not null"`
	DueAt      time.Time `gorm:"not null;index:idx_transitions_due"`
	Processed  bool      `gorm:"not null;index:idx_transitions_due"`
	CreatedAt  time.Time `gorm:"not null"`
	Seq        int64     `gorm:"type:bigserial;<-:false"`
}

// TableName overrides GORM's default naming convention.
func (TransitionDTO) TableName() string {
	return "pending_transitions"
}

func fromDomain(t *transition.PendingTransition) TransitionDTO {
	return TransitionDTO{
		ID:         t.ID().Bytes(),
		OrderID:    t.OrderID().Bytes(),
		FromStatus: int(t.FromStatus()),
		Target:     int(t.Target()),
		DueAt:      t.DueAt(),
		Processed:  t.IsProcessed(),
		CreatedAt:  t.CreatedAt(),
	}
}

func toDomain(dto TransitionDTO) (*transition.PendingTransition, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return transition.RestorePendingTransition(id, orderID,
		order.Status(dto.FromStatus), order.Status(dto.Target),
		dto.DueAt.UTC(), dto.Processed, dto.CreatedAt.UTC())
}
