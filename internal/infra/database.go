package infra

import (
	"fmt"

	"supplyease/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the Postgres pool (pgx underneath) and brings the schema
// up to date.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GormConfig is shared by every dialect we open. TranslateError turns
// unique-index violations into gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

// Migrate creates / updates all tables and then applies the idempotent index
// patches AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.PurchaseRequest{},
		&model.SourcingRequest{},
		&model.PurchaseOrder{},
		&model.DeliveryStatus{},
		&model.Supplier{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches adds expression indexes backing the case-insensitive
// business-key search. Plain SQL that both Postgres and SQLite accept.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE INDEX IF NOT EXISTS idx_purchase_requests_pr_number_lower ON purchase_requests (LOWER(pr_number))`,
		`CREATE INDEX IF NOT EXISTS idx_sourcing_requests_sr_number_lower ON sourcing_requests (LOWER(sr_number))`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_orders_po_number_lower ON purchase_orders (LOWER(po_number))`,
		`CREATE INDEX IF NOT EXISTS idx_delivery_status_status ON delivery_status (status)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
