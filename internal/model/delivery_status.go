package model

import "time"

const (
	DeliveryProcessing = "Processing"
	DeliveryOnTrack    = "On Track"
	DeliveryLate       = "Late"
	DeliveryDelivered  = "Delivered"
)

// DeliveryStatuses lists every accepted delivery state.
var DeliveryStatuses = []string{DeliveryProcessing, DeliveryOnTrack, DeliveryLate, DeliveryDelivered}

// DeliveryStatus tracks one shipment against a PO number. Rows are created
// with the PO and edited on their own afterwards.
type DeliveryStatus struct {
	ID           uint    `gorm:"primaryKey"`
	PONumber     *string `gorm:"column:po_number;type:varchar(32);index"`
	MaterialCode string  `gorm:"type:varchar(64)"`
	Status       string  `gorm:"type:varchar(32);not null;default:'Processing'"`
	UpdatedAt    time.Time
}

func (DeliveryStatus) TableName() string { return "delivery_status" }
