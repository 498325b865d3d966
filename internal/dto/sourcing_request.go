package dto

import (
	"time"

	"supplyease/internal/coerce"

	"github.com/shopspring/decimal"
)

type CreateSourcingRequestRequest struct {
	PRReference     string         `json:"pr_reference" validate:"max=32"`
	SupplierID      string         `json:"supplier_id" validate:"max=64"`
	Title           string         `json:"title" validate:"max=255"`
	ProjectDuration string         `json:"project_duration"`
	MaterialDesc    string         `json:"material_desc"`
	MaterialCode    string         `json:"material_code" validate:"max=64"`
	Quantity        coerce.Int     `json:"quantity" validate:"min=0"`
	Price           coerce.Decimal `json:"price"`
	TotalPrice      coerce.Decimal `json:"total_price"`
	Incoterm        string         `json:"incoterm" validate:"max=32"`
	PaymentTerm     string         `json:"payment_term" validate:"max=64"`
	DeliveryDate    coerce.Date    `json:"delivery_date"`
	StartDate       coerce.Date    `json:"start_date"`
	EndDate         coerce.Date    `json:"end_date"`
}

type SourcingRequestResponse struct {
	ID              uint            `json:"id"`
	SRNumber        string          `json:"sr_number"`
	PRReference     *string         `json:"pr_reference"`
	SupplierID      string          `json:"supplier_id"`
	Title           string          `json:"title"`
	ProjectDuration string          `json:"project_duration"`
	MaterialDesc    string          `json:"material_desc"`
	MaterialCode    string          `json:"material_code"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Incoterm        string          `json:"incoterm"`
	PaymentTerm     string          `json:"payment_term"`
	DeliveryDate    *time.Time      `json:"delivery_date"`
	StartDate       *time.Time      `json:"start_date"`
	EndDate         *time.Time      `json:"end_date"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
