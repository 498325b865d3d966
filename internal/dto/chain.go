package dto

import (
	"time"

	"supplyease/internal/coerce"

	"github.com/shopspring/decimal"
)

// ChainRowResponse is one line of the process view. Downstream columns are
// null when the stage does not exist yet.
type ChainRowResponse struct {
	PRID         uint            `json:"pr_id"`
	PRNumber     string          `json:"pr_number"`
	ItemName     string          `json:"item_name"`
	MaterialCode string          `json:"material_code"`
	Quantity     int             `json:"quantity"`
	Budget       decimal.Decimal `json:"budget"`
	PRStatus     string          `json:"pr_status"`
	CreatedAt    time.Time       `json:"created_at"`

	SRID        *uint      `json:"sr_id"`
	SRNumber    *string    `json:"sr_number"`
	SRTitle     *string    `json:"sr_title"`
	SupplierID  *string    `json:"supplier_id"`
	SRStatus    *string    `json:"sr_status"`
	SRStartDate *time.Time `json:"sr_start_date"`
	SREndDate   *time.Time `json:"sr_end_date"`

	POID         *uint            `json:"po_id"`
	PONumber     *string          `json:"po_number"`
	SupplierName *string          `json:"supplier_name"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	POStatus     *string          `json:"po_status"`
	POStartDate  *time.Time       `json:"po_start_date"`
	POEndDate    *time.Time       `json:"po_end_date"`

	DeliveryID        *uint      `json:"delivery_id"`
	DeliveryStatus    *string    `json:"delivery_status"`
	DeliveryUpdatedAt *time.Time `json:"delivery_updated_at"`
}

// StageUpdateRequest edits one downstream stage. A blank Number means the
// stage is not part of this update.
type StageUpdateRequest struct {
	Number    string      `json:"number" validate:"max=32"`
	Status    string      `json:"status" validate:"max=32"`
	StartDate coerce.Date `json:"start_date"`
	EndDate   coerce.Date `json:"end_date"`
}

type CascadeUpdateRequest struct {
	PRStatus string              `json:"pr_status" validate:"required,max=32"`
	SR       *StageUpdateRequest `json:"sr"`
	PO       *StageUpdateRequest `json:"po"`
}

type CascadeUpdateResponse struct {
	PRID      uint   `json:"pr_id"`
	PRStatus  string `json:"pr_status"`
	SRUpdated bool   `json:"sr_updated"`
	POUpdated bool   `json:"po_updated"`
}
