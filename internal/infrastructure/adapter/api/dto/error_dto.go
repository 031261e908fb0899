package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code        int                  `json:"code"`
	Message     string               `json:"message"`
	Kind        string               `json:"kind,omitempty"`
	Retryable   *bool                `json:"retryable,omitempty"`
	Details     []string             `json:"details,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}
