package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/db"
)

func Migrate(gormDB *gorm.DB) error {
	// AutoMigrate the core models first, then run manual migrations for
	// schema changes AutoMigrate can't express
	err := gormDB.AutoMigrate(
		&db.Order{},
		&db.Invoice{},
		&db.Payout{},
	)
	if err != nil {
		return err
	}

	m := gormigrate.New(gormDB, gormigrate.DefaultOptions, []*gormigrate.Migration{
		_202608151200_invoices_order_kind_index,
	})
	return m.Migrate()
}
