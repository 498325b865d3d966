// Package apierror provides the error envelopes returned by the API. Every
// 4xx/5xx body goes through here so internal details (SQL, stack traces)
// never reach clients.
package apierror

// APIError is the canonical error envelope.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field messages.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// Common messages.
const (
	MsgInternal     = "internal server error"
	MsgNotFound     = "resource not found"
	MsgUnauthorized = "authentication required"
	MsgForbidden    = "insufficient permissions"
	MsgInvalidToken = "invalid or expired token"
	MsgTooMany      = "too many requests, try again shortly"
	MsgInvalidID    = "invalid id"
	MsgInvalidBody  = "malformed request body"
)
