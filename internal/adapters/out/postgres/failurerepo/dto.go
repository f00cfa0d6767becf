// Package failurerepo persists the append-only failure log.
package failurerepo

import (
	"time"

	"foodorder/internal/core/domain/model/failure"

	"github.com/google/uuid"
)

// FailureDTO is one failure log entry.
type FailureDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Operation string     `gorm:"type:varchar(32);not null;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Message   string     `gorm:"type:text;not null"`
	Timestamp time.Time  `gorm:"not null"`
}

// TableName overrides GORM's default naming convention.
func (FailureDTO) TableName() string {
	return "order_failures"
}

func fromDomain(r *failure.Record) FailureDTO {
	var orderID *uuid.UUID
	if id := r.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return FailureDTO{
		ID:        r.ID().Bytes(),
		Operation: string(r.Operation()),
		OrderID:   orderID,
		UserID:    r.UserID().Bytes(),
		Message:   r.Message(),
		Timestamp: r.Timestamp(),
	}
}
