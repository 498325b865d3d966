package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PR statuses. The set is open; these are the values the workflow knows about.
const (
	PRStatusPending   = "Pending"
	PRStatusApproved  = "Approved"
	PRStatusRejected  = "Rejected"
	PRStatusCompleted = "Completed"
)

// PurchaseRequest is the root of a workflow chain.
type PurchaseRequest struct {
	ID           uint            `gorm:"primaryKey"`
	PRNumber     string          `gorm:"column:pr_number;type:varchar(32);uniqueIndex;not null"`
	ItemName     string          `gorm:"not null"`
	MaterialCode string          `gorm:"type:varchar(64)"`
	Quantity     int             `gorm:"not null;default:0"`
	Budget       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status       string          `gorm:"type:varchar(32);not null;default:'Pending'"`
	CreatedAt    time.Time       `gorm:"index"`
}

func (PurchaseRequest) TableName() string { return "purchase_requests" }
