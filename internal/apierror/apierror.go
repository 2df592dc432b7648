// Package apierror provides the standardized error envelope for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
//
// Every response — success or failure — carries a "success" boolean; failures
// carry a human-readable "message" instead of "data".
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Success: false, Message: msg}
}

// DetailedError carries the failure message plus structured detail. The
// import endpoints use it to return the per-row report when a whole file is
// rejected, so the client can show which rows failed and why.
type DetailedError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detalle any    `json:"detalle"`
}

func NewConDetalle(msg string, detalle any) *DetailedError {
	return &DetailedError{Success: false, Message: msg, Detalle: detalle}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Success: false, Message: "Error de validacion", Fields: fields}
}
