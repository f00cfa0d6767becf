// Package orderrepo persists order aggregates with GORM.
// An order is stored as one row in "orders" plus its lines in "order_lines".
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the capacity count and the activation sweep.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status       int        `gorm:"type:smallint;not null;index:idx_orders_status_active"`
	Active       bool       `gorm:"not null;index:idx_orders_status_active"`
	CreatedAt    time.Time  `gorm:"not null;index"`
	ScheduledFor *time.Time `gorm:"index"`
	Lines        []LineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one order line. Lines are written once with the order.
type LineDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey"`
	DishID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName overrides GORM's default naming convention.
func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	lines := make([]LineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, LineDTO{
			OrderID:   orderID,
			Position:  i,
			DishID:    l.DishID().Bytes(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		CreatedBy:    o.CreatedBy().Bytes(),
		Status:       int(o.Status()),
		Active:       o.IsActive(),
		CreatedAt:    o.CreatedAt(),
		ScheduledFor: o.ScheduledFor(),
		Lines:        lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var scheduledFor *time.Time
	if dto.ScheduledFor != nil {
		t := dto.ScheduledFor.UTC()
		scheduledFor = &t
	}

	return order.RestoreOrder(id, createdBy, order.Status(dto.Status), dto.Active,
		dto.CreatedAt.UTC(), scheduledFor, lines)
}

func lineToDomain(dto LineDTO) (order.Line, error) {
	dishID, err := kernel.UUIDFromBytes(dto.DishID[:])
	if err != nil {
		return order.Line{}, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Line{}, err
	}

	return order.NewLine(dishID, dto.Quantity, price)
}
