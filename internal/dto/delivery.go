package dto

import "time"

type UpdateDeliveryRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing 'On Track' Late Delivered"`
}

type DeliveryStatusResponse struct {
	ID           uint      `json:"id"`
	PONumber     *string   `json:"po_number"`
	MaterialCode string    `json:"material_code"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}
