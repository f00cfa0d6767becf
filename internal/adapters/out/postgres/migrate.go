package postgres

import (
	"strings"

	"foodorder/internal/adapters/out/postgres/dishrepo"
	"foodorder/internal/adapters/out/postgres/failurerepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/transitionrepo"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in truncation-safe order.
var Tables = []string{"order_lines", "orders", "pending_transitions", "order_failures", "dishes"}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&transitionrepo.TransitionDTO{},
		&failurerepo.FailureDTO{},
		&dishrepo.DishDTO{},
	)
}

// Truncate empties every table in Tables. Used to reset state between
// integration tests.
func Truncate(db *gorm.DB) error {
	quoted := make([]string, 0, len(Tables))
	for _, t := range Tables {
		quoted = append(quoted, pq.QuoteIdentifier(t))
	}
	return db.Exec("TRUNCATE TABLE " + strings.Join(quoted, ", ") + " CASCADE").Error
}
