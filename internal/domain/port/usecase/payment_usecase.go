package usecase

import (
	"context"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
)

// InitiateRequest represents a merchant's request to start a payment
type InitiateRequest struct {
	Gateway string
	Amount  int64
	// CallbackURL overrides the gateway's configured callback base URL when set
	CallbackURL string
}

// InitiateResult contains the created transaction and where to send the customer
type InitiateResult struct {
	Transaction *entity.Transaction
	Redirect    entity.RedirectTarget
}

// PaymentUseCase drives transaction records through the payment lifecycle
type PaymentUseCase interface {
	// Initiate creates a pending record and obtains a bank reference.
	// On failure the record is left failed and a *errs.GatewayFailure is returned.
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)

	// Resume applies a browser callback to the matching record
	Resume(ctx context.Context, params entity.CallbackParams) (*entity.Transaction, error)

	// Verify confirms a callback-received record with the bank
	Verify(ctx context.Context, transactionID uint64) (*entity.Transaction, error)

	// Settle commits a verified record
	Settle(ctx context.Context, transactionID uint64) (*entity.Transaction, error)

	// Complete runs resume, verify and settle for a browser return
	Complete(ctx context.Context, params entity.CallbackParams) (*entity.Transaction, error)

	// Get loads a record with its log
	Get(ctx context.Context, transactionID uint64) (*entity.Transaction, error)
}

// MaintenanceUseCase sweeps records that a browser or bank left behind
type MaintenanceUseCase interface {
	// RetryStuckVerifications repeats verify on records left callback_received too long
	RetryStuckVerifications(ctx context.Context) (int, error)

	// RetryStuckSettlements retries settle on records left verified too long
	RetryStuckSettlements(ctx context.Context) (int, error)

	// ExpireStale fails records whose customer never came back from the bank
	ExpireStale(ctx context.Context) (int, error)
}

// OutcomeNormalizer maps bank status codes onto the shared outcome taxonomy
type OutcomeNormalizer interface {
	// Normalize looks up a raw bank code in the gateway's code table
	Normalize(gateway, code, message string) entity.Outcome

	// NormalizeError classifies an adapter error, using the code table for protocol errors
	NormalizeError(gateway string, err error) entity.Outcome
}
