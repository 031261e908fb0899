package gateway

import (
	"context"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
)

// Initiation is the result of a successful beginPayment call
type Initiation struct {
	RefID    string
	Redirect entity.RedirectTarget
}

// Adapter translates the common payment lifecycle into one bank's remote protocol.
// Adapters never write the transaction record; they return values or typed errors
// (*errs.TransportFault, *errs.ProtocolError) that the lifecycle controller applies.
type Adapter interface {
	// Name returns the gateway name the adapter is registered under
	Name() string

	// SinglePhase reports whether verify already commits the payment,
	// in which case SettlePayment is a no-op success
	SinglePhase() bool

	// RequiredCredentials lists the credential keys the adapter reads
	RequiredCredentials() []string

	// CodeTable returns the adapter's complete status code mapping
	CodeTable() entity.CodeTable

	// BeginPayment registers the payment with the bank and returns its reference
	// and the redirect the customer must follow
	BeginPayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) (Initiation, error)

	// AcceptCallback parses browser-delivered parameters without touching the network
	AcceptCallback(params entity.CallbackParams) entity.CallbackResult

	// VerifyPayment confirms server-to-server that the payment cleared
	VerifyPayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) (entity.Verification, error)

	// SettlePayment commits a verified payment
	SettlePayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) error
}

// Registry resolves adapters by gateway name
type Registry interface {
	// Get returns the adapter registered under name or errs.ErrUnknownGateway
	Get(name string) (Adapter, error)

	// Names returns every registered gateway name in sorted order
	Names() []string
}

// SettingsProvider supplies per-gateway credentials and callback base URL.
// The controller calls it once per lifecycle step and passes the result to the adapter.
type SettingsProvider interface {
	// Lookup returns the settings for name.
	//
	// Possible errors:
	// - ErrUnknownGateway: If no settings exist for name
	Lookup(ctx context.Context, name string) (entity.GatewaySettings, error)
}
