package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChainRow is one line of the PR → SR → PO → Delivery view. Everything past
// the PR columns is nullable because the join is outer.
type ChainRow struct {
	PRID        uint            `gorm:"column:pr_id"`
	PRNumber    string          `gorm:"column:pr_number"`
	ItemName    string          `gorm:"column:item_name"`
	PRMaterial  string          `gorm:"column:pr_material_code"`
	PRQuantity  int             `gorm:"column:pr_quantity"`
	Budget      decimal.Decimal `gorm:"column:budget"`
	PRStatus    string          `gorm:"column:pr_status"`
	PRCreatedAt time.Time       `gorm:"column:pr_created_at"`

	SRID        *uint      `gorm:"column:sr_id"`
	SRNumber    *string    `gorm:"column:sr_number"`
	SRTitle     *string    `gorm:"column:sr_title"`
	SRSupplier  *string    `gorm:"column:sr_supplier_id"`
	SRStatus    *string    `gorm:"column:sr_status"`
	SRStartDate *time.Time `gorm:"column:sr_start_date"`
	SREndDate   *time.Time `gorm:"column:sr_end_date"`

	POID          *uint               `gorm:"column:po_id"`
	PONumber      *string             `gorm:"column:po_number"`
	POSupplier    *string             `gorm:"column:po_supplier_name"`
	POTotalAmount decimal.NullDecimal `gorm:"column:po_total_amount"`
	POStatus      *string             `gorm:"column:po_status"`
	POStartDate   *time.Time          `gorm:"column:po_start_date"`
	POEndDate     *time.Time          `gorm:"column:po_end_date"`

	DeliveryID        *uint      `gorm:"column:delivery_id"`
	DeliveryStatus    *string    `gorm:"column:delivery_status"`
	DeliveryUpdatedAt *time.Time `gorm:"column:delivery_updated_at"`
}
