package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

func NewDB(uri string, logDBQueries bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
	}
	if logDBQueries {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	gormDB, err := gorm.Open(sqlite.Open(uri), gormConfig)
	if err != nil {
		return nil, err
	}

	err = gormDB.Exec("PRAGMA foreign_keys = ON").Error
	if err != nil {
		return nil, err
	}
	err = gormDB.Exec("PRAGMA busy_timeout = 5000").Error
	if err != nil {
		return nil, err
	}
	// WAL allows the reconciliation loop to read while request handlers write
	err = gormDB.Exec("PRAGMA journal_mode = WAL").Error
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

// RowLock adds a FOR UPDATE clause on dialects that support it
// (in sqlite transactions are serializable by default)
func RowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func Stop(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
