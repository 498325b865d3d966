package dto

import "time"

type SupplierRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	ContactPerson string `json:"contact_person" validate:"max=255"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=32"`
	Address       string `json:"address"`
	Status        string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

type SupplierResponse struct {
	ID            uint      `json:"id"`
	SupplierID    string    `json:"supplier_id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
