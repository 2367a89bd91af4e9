package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// The reconciliation loop and the settlement orchestrator both select
// invoices by (order, kind, status); this index keeps those scans off
// the unique payment_hash index.
var _202608151200_invoices_order_kind_index = &gormigrate.Migration{
	ID: "202608151200_invoices_order_kind_index",
	Migrate: func(tx *gorm.DB) error {
		return tx.Exec("CREATE INDEX IF NOT EXISTS idx_invoices_order_kind_status ON invoices(order_id, kind, status)").Error
	},
	Rollback: func(tx *gorm.DB) error {
		return tx.Exec("DROP INDEX IF EXISTS idx_invoices_order_kind_status").Error
	},
}
