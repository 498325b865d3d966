package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const POStatusNew = "New"

type PurchaseOrder struct {
	ID           uint            `gorm:"primaryKey"`
	PONumber     string          `gorm:"column:po_number;type:varchar(32);uniqueIndex;not null"`
	SRReference  *string         `gorm:"column:sr_reference;type:varchar(32);index"`
	SupplierName string
	MaterialCode string          `gorm:"type:varchar(64)"`
	MaterialName string
	Quantity     int             `gorm:"not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DeliveryDate *time.Time      `gorm:"type:date"`
	StartDate    *time.Time      `gorm:"type:date"`
	EndDate      *time.Time      `gorm:"type:date"`
	Status       string          `gorm:"type:varchar(32);not null;default:'New'"`
	CreatedAt    time.Time
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }
