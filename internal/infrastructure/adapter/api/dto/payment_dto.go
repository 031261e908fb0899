package dto

import (
	"time"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
)

// InitiatePaymentRequest represents the request body for starting a payment
type InitiatePaymentRequest struct {
	Gateway     string `json:"gateway" binding:"required"`
	Amount      int64  `json:"amount"`
	CallbackURL string `json:"callbackUrl,omitempty"`
}

// RedirectResponse tells the client how to send the customer to the bank
type RedirectResponse struct {
	Method string            `json:"method"`
	URL    string            `json:"url,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Form   string            `json:"form,omitempty"`
}

// InitiatePaymentResponse represents the response of a successful initiation
type InitiatePaymentResponse struct {
	TransactionID uint64           `json:"transactionId,string"`
	RefID         string           `json:"refId"`
	Status        string           `json:"status"`
	Redirect      RedirectResponse `json:"redirect"`
}

// LogEntryResponse is one line of a transaction's history
type LogEntryResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionResponse represents a payment record
type TransactionResponse struct {
	ID           uint64             `json:"id,string"`
	Gateway      string             `json:"gateway"`
	Amount       int64              `json:"amount"`
	Status       string             `json:"status"`
	RefID        string             `json:"refId,omitempty"`
	TrackingCode string             `json:"trackingCode,omitempty"`
	CardNumber   string             `json:"cardNumber,omitempty"`
	Successful   bool               `json:"successful"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Log          []LogEntryResponse `json:"log,omitempty"`
}

// OutcomeResponse is the localized result shown to the customer after a callback
type OutcomeResponse struct {
	Kind       string `json:"kind"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Successful bool   `json:"successful"`
}

// CallbackResponse represents the result of a browser return from the bank
type CallbackResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Outcome     OutcomeResponse     `json:"outcome"`
}

// HealthResponse represents the service health probe
type HealthResponse struct {
	Status   string         `json:"status"`
	Database string         `json:"database"`
	Pool     map[string]int `json:"pool,omitempty"`
}

// NewInitiatePaymentResponse maps an initiation result onto the response body
func NewInitiatePaymentResponse(result *usecase.InitiateResult) InitiatePaymentResponse {
	return InitiatePaymentResponse{
		TransactionID: result.Transaction.ID,
		RefID:         result.Transaction.RefID,
		Status:        string(result.Transaction.Status),
		Redirect:      NewRedirectResponse(result.Redirect),
	}
}

// NewRedirectResponse maps a redirect target
func NewRedirectResponse(target entity.RedirectTarget) RedirectResponse {
	return RedirectResponse{
		Method: string(target.Method),
		URL:    target.URL,
		Fields: target.Fields,
		Form:   target.FormHTML,
	}
}

// NewTransactionResponse maps a transaction record, including its log
func NewTransactionResponse(txn *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           txn.ID,
		Gateway:      txn.GatewayName,
		Amount:       txn.Amount,
		Status:       string(txn.Status),
		RefID:        txn.RefID,
		TrackingCode: txn.TrackingCode,
		CardNumber:   txn.CardNumber,
		Successful:   txn.IsSuccessful(),
		CreatedAt:    txn.CreatedAt,
		UpdatedAt:    txn.UpdatedAt,
	}
	for _, entry := range txn.Log {
		resp.Log = append(resp.Log, LogEntryResponse{
			Code:      entry.Code,
			Message:   entry.Message,
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp,
		})
	}
	return resp
}
