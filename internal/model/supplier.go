package model

import "time"

const (
	SupplierActive   = "Active"
	SupplierInactive = "Inactive"
)

type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	SupplierID    string `gorm:"column:supplier_id;type:varchar(32);uniqueIndex;not null"`
	Name          string `gorm:"not null"`
	ContactPerson string
	Email         string
	Phone         string `gorm:"type:varchar(32)"`
	Address       string
	Status        string `gorm:"type:varchar(16);not null;default:'Active'"`
	CreatedAt     time.Time
}

func (Supplier) TableName() string { return "suppliers" }
