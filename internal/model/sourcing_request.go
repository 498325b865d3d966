package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const SRStatusInProgress = "In Progress"

// SourcingRequest links back to its PR through PRReference, a plain string
// that may dangle.
type SourcingRequest struct {
	ID              uint            `gorm:"primaryKey"`
	SRNumber        string          `gorm:"column:sr_number;type:varchar(32);uniqueIndex;not null"`
	PRReference     *string         `gorm:"column:pr_reference;type:varchar(32);index"`
	SupplierID      string          `gorm:"type:varchar(64)"`
	Title           string
	ProjectDuration string
	MaterialDesc    string
	MaterialCode    string          `gorm:"type:varchar(64)"`
	Quantity        int             `gorm:"not null;default:0"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Incoterm        string          `gorm:"type:varchar(32)"`
	PaymentTerm     string          `gorm:"type:varchar(64)"`
	DeliveryDate    *time.Time      `gorm:"type:date"`
	StartDate       *time.Time      `gorm:"type:date"`
	EndDate         *time.Time      `gorm:"type:date"`
	Status          string          `gorm:"type:varchar(32);not null;default:'In Progress'"`
	CreatedAt       time.Time
}

func (SourcingRequest) TableName() string { return "sourcing_requests" }
