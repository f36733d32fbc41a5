package postgres

import (
	"fmt"

	"laundry/internal/adapters/out/postgres/absencerepo"
	"laundry/internal/adapters/out/postgres/assignmentrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&orderrepo.PhotoDTO{},
		&assignmentrepo.AssignmentDTO{},
		&absencerepo.AbsenceDTO{},
		&outboxrepo.EventDTO{},
	}
}

// Migrate creates or updates the schema. Both PostgreSQL and SQLite support the
// partial unique index that keeps one open assignment per order and phase.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_assignments_open ON assignments (order_id, phase) WHERE is_open",
	).Error; err != nil {
		return fmt.Errorf("create ux_assignments_open: %w", err)
	}
	return nil
}
