package error

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest       = 4000
	CodeInvalidAmount        = 4001
	CodeUnknownGateway       = 4002
	CodeInvalidCallback      = 4003
	CodeInvalidTransactionID = 4004
	CodeInvalidCallbackURL   = 4005
	CodeTransactionNotFound  = 4040
	CodeStatePrecondition    = 4090
	CodeCallbackMismatch     = 4091
	CodePaymentDeclined      = 4220
	CodeResourceLocked       = 4230

	// 5xxx - Server errors
	CodeInternalServer       = 5000
	CodeBankUnavailable      = 5020
	CodeGatewayMisconfigured = 5030
)

// Base error types
var (
	// ErrInvalidAmount is returned when the payment amount is not a positive integer
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrUnknownGateway is returned when no adapter is registered under the requested name
	ErrUnknownGateway = errors.New("unknown gateway")

	// ErrGatewayDisabled is returned when the gateway exists but is switched off in configuration
	ErrGatewayDisabled = errors.New("gateway is disabled")

	// ErrGatewayMisconfigured is returned when a gateway lacks required credentials or settings
	ErrGatewayMisconfigured = errors.New("gateway is misconfigured")

	// ErrInvalidCallback is returned when callback parameters cannot be interpreted
	ErrInvalidCallback = errors.New("invalid callback parameters")

	// ErrInvalidCallbackURL is returned when no usable callback base URL is available
	ErrInvalidCallbackURL = errors.New("invalid callback URL")

	// ErrCallbackMismatch is returned when a callback refers to a different bank reference than the record
	ErrCallbackMismatch = errors.New("callback does not match transaction")

	// ErrInvalidTransactionID is returned when the transaction ID is missing or malformed
	ErrInvalidTransactionID = errors.New("invalid transaction ID")

	// ErrInvalidRefID is returned when a bank reference is empty or is being overwritten
	ErrInvalidRefID = errors.New("invalid bank reference")

	// ErrInvalidTransition is returned when a status change violates the lifecycle
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateTransaction is returned when a transaction with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrStatePrecondition is returned when an operation is invoked on a record in the wrong state
	ErrStatePrecondition = errors.New("transaction is not in the required state")

	// ErrTransport is returned when the bank could not be reached or answered unintelligibly
	ErrTransport = errors.New("bank transport failure")

	// ErrBankRejected is returned when the bank explicitly rejected an operation
	ErrBankRejected = errors.New("bank rejected the operation")

	// ErrPaymentFailed is the unified failure returned by the lifecycle controller
	ErrPaymentFailed = errors.New("payment failed")

	// ErrUnknownOutcome is matched by failures whose bank code is absent from the code table
	ErrUnknownOutcome = errors.New("unknown bank outcome")

	// ErrLocked is returned when a lease is held by another owner
	ErrLocked = errors.New("resource is locked by another operation")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrUnknownGateway), errors.Is(err, ErrGatewayDisabled):
		return CodeUnknownGateway
	case errors.Is(err, ErrInvalidCallback):
		return CodeInvalidCallback
	case errors.Is(err, ErrInvalidTransactionID):
		return CodeInvalidTransactionID
	case errors.Is(err, ErrInvalidCallbackURL):
		return CodeInvalidCallbackURL
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrStatePrecondition):
		return CodeStatePrecondition
	case errors.Is(err, ErrCallbackMismatch):
		return CodeCallbackMismatch
	case errors.Is(err, ErrLocked):
		return CodeResourceLocked
	case errors.Is(err, ErrTransport):
		return CodeBankUnavailable
	case errors.Is(err, ErrPaymentFailed), errors.Is(err, ErrBankRejected):
		return CodePaymentDeclined
	case errors.Is(err, ErrGatewayMisconfigured):
		return CodeGatewayMisconfigured
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps an error to the HTTP status the API responds with
func HTTPStatus(err error) int {
	switch ErrorCode(err) {
	case CodeInvalidRequest, CodeInvalidAmount, CodeUnknownGateway, CodeInvalidCallback,
		CodeInvalidTransactionID, CodeInvalidCallbackURL:
		return http.StatusBadRequest
	case CodeTransactionNotFound:
		return http.StatusNotFound
	case CodeStatePrecondition, CodeCallbackMismatch, CodeResourceLocked:
		return http.StatusConflict
	case CodePaymentDeclined:
		return http.StatusUnprocessableEntity
	case CodeBankUnavailable:
		return http.StatusBadGateway
	case CodeGatewayMisconfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Transport fault codes
const (
	FaultSOAP      = "SoapFault"
	FaultTimeout   = "Timeout"
	FaultNetwork   = "Network"
	FaultHTTP      = "HTTP"
	FaultMalformed = "Malformed"
)

// TransportFault is raised when a remote call timed out, failed on the network,
// returned a SOAP fault or returned a body that could not be decoded.
// The caller does not know what the bank decided.
type TransportFault struct {
	Gateway   string
	Operation string
	Code      string // one of the Fault* codes
	Timeout   bool
	Err       error
}

// Error implements the error interface for TransportFault
func (e *TransportFault) Error() string {
	return fmt.Sprintf("transport fault calling %s.%s (%s): %v", e.Gateway, e.Operation, e.Code, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportFault) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrTransport
func (e *TransportFault) Is(target error) bool {
	return target == ErrTransport
}

// LogFields returns a map of fields for structured logging
func (e *TransportFault) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "transport_fault",
		"gateway":    e.Gateway,
		"operation":  e.Operation,
		"fault_code": e.Code,
		"timeout":    e.Timeout,
		"error_code": CodeBankUnavailable,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewTransportFault creates a new transport fault
func NewTransportFault(gateway, operation, code string, timeout bool, err error) error {
	return &TransportFault{
		Gateway:   gateway,
		Operation: operation,
		Code:      code,
		Timeout:   timeout,
		Err:       err,
	}
}

// ProtocolError is raised when the bank answered with a status code other than its success sentinel
type ProtocolError struct {
	Gateway   string
	Operation string
	Code      string
	Message   string
}

// Error implements the error interface for ProtocolError
func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s rejected %s with code %s", e.Gateway, e.Operation, e.Code)
	}
	return fmt.Sprintf("%s rejected %s with code %s: %s", e.Gateway, e.Operation, e.Code, e.Message)
}

// Is reports whether the target is ErrBankRejected
func (e *ProtocolError) Is(target error) bool {
	return target == ErrBankRejected
}

// LogFields returns a map of fields for structured logging
func (e *ProtocolError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "protocol_error",
		"gateway":    e.Gateway,
		"operation":  e.Operation,
		"bank_code":  e.Code,
		"bank_msg":   e.Message,
		"error_code": CodePaymentDeclined,
	}
}

// NewProtocolError creates a new protocol error carrying the bank's raw code
func NewProtocolError(gateway, operation, code, message string) error {
	return &ProtocolError{
		Gateway:   gateway,
		Operation: operation,
		Code:      code,
		Message:   message,
	}
}

// StatePreconditionError is raised by the controller when an operation is invoked on a record
// that is not in the required lifecycle state. Actual is empty when no record exists.
type StatePreconditionError struct {
	TransactionID uint64
	Operation     string
	Expected      []string
	Actual        string
}

// Error implements the error interface for StatePreconditionError
func (e *StatePreconditionError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "missing"
	}
	return fmt.Sprintf("cannot %s transaction %d: status is %s, expected %s",
		e.Operation, e.TransactionID, actual, strings.Join(e.Expected, "|"))
}

// Is reports whether the target is ErrStatePrecondition
func (e *StatePreconditionError) Is(target error) bool {
	return target == ErrStatePrecondition
}

// LogFields returns a map of fields for structured logging
func (e *StatePreconditionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "state_precondition",
		"transaction_id": e.TransactionID,
		"operation":      e.Operation,
		"expected":       e.Expected,
		"actual":         e.Actual,
		"error_code":     CodeStatePrecondition,
	}
}

// NewStatePreconditionError creates a new state precondition error
func NewStatePreconditionError(transactionID uint64, operation, actual string, expected ...string) error {
	return &StatePreconditionError{
		TransactionID: transactionID,
		Operation:     operation,
		Expected:      expected,
		Actual:        actual,
	}
}

// GatewayFailure is the single failure the lifecycle controller raises after it has
// recorded an adapter error on the transaction. It carries the normalized outcome so
// callers can render a customer notice without knowing which bank was involved.
type GatewayFailure struct {
	TransactionID uint64
	Gateway       string
	Operation     string
	Code          string
	Kind          string
	Messages      map[string]string
	Retryable     bool
	Err           error
}

// Error implements the error interface for GatewayFailure
func (e *GatewayFailure) Error() string {
	return fmt.Sprintf("payment %d failed during %s (%s): %s", e.TransactionID, e.Operation, e.Kind, e.Message("en"))
}

// Unwrap returns the adapter error that caused the failure
func (e *GatewayFailure) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrPaymentFailed, or ErrUnknownOutcome for unmapped codes
func (e *GatewayFailure) Is(target error) bool {
	if target == ErrPaymentFailed {
		return true
	}
	return target == ErrUnknownOutcome && e.Kind == "unknown"
}

// Message returns the localized message, falling back to English
func (e *GatewayFailure) Message(locale string) string {
	if msg, ok := e.Messages[locale]; ok && msg != "" {
		return msg
	}
	return e.Messages["en"]
}

// LogFields returns a map of fields for structured logging
func (e *GatewayFailure) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":     "gateway_failure",
		"transaction_id": e.TransactionID,
		"gateway":        e.Gateway,
		"operation":      e.Operation,
		"bank_code":      e.Code,
		"kind":           e.Kind,
		"retryable":      e.Retryable,
		"error_code":     ErrorCode(e),
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// IsRetryable reports whether repeating the failed step may succeed
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrStatePrecondition) {
		return false
	}
	var failure *GatewayFailure
	if errors.As(err, &failure) {
		return failure.Retryable
	}
	return errors.Is(err, ErrTransport)
}

// IsStatePreconditionError checks if the error is a lifecycle precondition violation
func IsStatePreconditionError(err error) bool {
	return errors.Is(err, ErrStatePrecondition)
}

// IsTransportFault checks if the error is a transport-level fault
func IsTransportFault(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// LogFieldsOf extracts structured log fields from typed errors, falling back to the message
func LogFieldsOf(err error) map[string]any {
	var carrier interface{ LogFields() map[string]any }
	if errors.As(err, &carrier) {
		return carrier.LogFields()
	}
	if err == nil {
		return map[string]any{}
	}
	return map[string]any{"error": err.Error(), "error_code": ErrorCode(err)}
}
