package dto

import (
	"time"

	"supplyease/internal/coerce"

	"github.com/shopspring/decimal"
)

type CreatePurchaseRequestRequest struct {
	ItemName     string         `json:"item_name" validate:"required,max=255"`
	MaterialCode string         `json:"material_code" validate:"max=64"`
	Quantity     coerce.Int     `json:"quantity" validate:"min=0"`
	Budget       coerce.Decimal `json:"budget"`
}

type PurchaseRequestResponse struct {
	ID           uint            `json:"id"`
	PRNumber     string          `json:"pr_number"`
	ItemName     string          `json:"item_name"`
	MaterialCode string          `json:"material_code"`
	Quantity     int             `json:"quantity"`
	Budget       decimal.Decimal `json:"budget"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ImportRow is one raw line of a bulk PR upload, columns
// Item, MaterialCode, Qty, Budget.
type ImportRow struct {
	Item         string
	MaterialCode string
	Qty          string
	Budget       string
}

type ImportResult struct {
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Detail  string `json:"detail,omitempty"` // set when the batch stopped early
}
