package normalizer

import (
	"errors"
	"sync"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
)

// Codes used for failures that do not come from a bank code table
const (
	CodeMisconfigured = "CONFIG"
	CodeInternal      = "INTERNAL"
)

var misconfiguredMessage = entity.LocalizedMessage{
	FA: "تنظیمات درگاه پرداخت ناقص است",
	EN: "The payment gateway is not configured correctly",
}

// Normalizer translates bank status codes into the shared outcome taxonomy
type Normalizer struct {
	mu     sync.RWMutex
	tables map[string]entity.CodeTable
}

// Ensure Normalizer implements the OutcomeNormalizer interface
var _ usecase.OutcomeNormalizer = (*Normalizer)(nil)

// NewNormalizer creates a normalizer with the given per-gateway code tables
func NewNormalizer(tables map[string]entity.CodeTable) *Normalizer {
	n := &Normalizer{tables: make(map[string]entity.CodeTable, len(tables))}
	for gateway, table := range tables {
		n.tables[gateway] = table
	}
	return n
}

// Register adds or replaces the code table of a gateway
func (n *Normalizer) Register(gateway string, table entity.CodeTable) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tables[gateway] = table
}

// Normalize looks the code up in the gateway's table. Codes that are missing,
// and gateways without a table, map to the unknown kind with a generic message.
func (n *Normalizer) Normalize(gateway, code, message string) entity.Outcome {
	n.mu.RLock()
	table := n.tables[gateway]
	n.mu.RUnlock()

	outcome := entity.Outcome{
		Gateway:    gateway,
		Code:       code,
		RawMessage: message,
	}

	entry, ok := table.Lookup(code)
	if !ok {
		outcome.Kind = entity.OutcomeUnknown
		outcome.Message = entity.UnknownMessage
		return outcome
	}

	outcome.Kind = entry.Kind
	outcome.Message = entry.Message
	outcome.Retryable = entry.Retryable
	return outcome
}

// NormalizeError classifies an adapter error
func (n *Normalizer) NormalizeError(gateway string, err error) entity.Outcome {
	if err == nil {
		return entity.Outcome{Gateway: gateway, Kind: entity.OutcomeSuccess}
	}

	var protocolErr *errs.ProtocolError
	if errors.As(err, &protocolErr) {
		return n.Normalize(gateway, protocolErr.Code, protocolErr.Message)
	}

	var fault *errs.TransportFault
	if errors.As(err, &fault) {
		return entity.Outcome{
			Gateway:    gateway,
			Code:       fault.Code,
			Kind:       entity.OutcomeBankUnavailable,
			Message:    entity.BankUnavailableMessage,
			Retryable:  true,
			RawMessage: err.Error(),
		}
	}

	if errors.Is(err, errs.ErrGatewayMisconfigured) {
		return entity.Outcome{
			Gateway:    gateway,
			Code:       CodeMisconfigured,
			Kind:       entity.OutcomeMerchantError,
			Message:    misconfiguredMessage,
			RawMessage: err.Error(),
		}
	}

	return entity.Outcome{
		Gateway:    gateway,
		Code:       CodeInternal,
		Kind:       entity.OutcomeUnknown,
		Message:    entity.UnknownMessage,
		RawMessage: err.Error(),
	}
}
