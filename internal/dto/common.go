package dto

// ListFilter carries the query-string narrowing shared by every list endpoint.
type ListFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
