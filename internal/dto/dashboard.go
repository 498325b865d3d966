package dto

import "github.com/shopspring/decimal"

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardResponse struct {
	Spending       decimal.Decimal `json:"spending"`
	SRStatus       []StatusCount   `json:"sr_status"`
	DeliveryStatus []StatusCount   `json:"delivery_status"`
}
