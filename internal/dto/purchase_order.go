package dto

import (
	"time"

	"supplyease/internal/coerce"

	"github.com/shopspring/decimal"
)

type CreatePurchaseOrderRequest struct {
	SRReference  string         `json:"sr_reference" validate:"max=32"`
	SupplierName string         `json:"supplier_name" validate:"max=255"`
	MaterialCode string         `json:"material_code" validate:"max=64"`
	MaterialName string         `json:"material_name" validate:"max=255"`
	Quantity     coerce.Int     `json:"quantity" validate:"min=0"`
	UnitPrice    coerce.Decimal `json:"unit_price"`
	TotalAmount  coerce.Decimal `json:"total_amount"`
	DeliveryDate coerce.Date    `json:"delivery_date"`
	StartDate    coerce.Date    `json:"start_date"`
	EndDate      coerce.Date    `json:"end_date"`
}

type PurchaseOrderResponse struct {
	ID           uint                    `json:"id"`
	PONumber     string                  `json:"po_number"`
	SRReference  *string                 `json:"sr_reference"`
	SupplierName string                  `json:"supplier_name"`
	MaterialCode string                  `json:"material_code"`
	MaterialName string                  `json:"material_name"`
	Quantity     int                     `json:"quantity"`
	UnitPrice    decimal.Decimal         `json:"unit_price"`
	TotalAmount  decimal.Decimal         `json:"total_amount"`
	DeliveryDate *time.Time              `json:"delivery_date"`
	StartDate    *time.Time              `json:"start_date"`
	EndDate      *time.Time              `json:"end_date"`
	Status       string                  `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	Delivery     *DeliveryStatusResponse `json:"delivery,omitempty"`
}
