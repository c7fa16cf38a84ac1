package client

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dodo-storefront-demo/internal/model"
)

// InitSqliteClient opens the sqlite file backing the persistent entitlement
// store and migrates its two tables.
func InitSqliteClient(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.SubscriptionRecord{},
		&model.PurchaseRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate entitlement tables: %w", err)
	}

	return db, nil
}
