package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInvalidAmount.Error() != "amount must be a positive integer" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
	if ErrStatePrecondition.Error() != "transaction is not in the required state" {
		t.Errorf("ErrStatePrecondition has unexpected message: %s", ErrStatePrecondition.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidRequest", ErrInvalidRequest, 4000},
		{"InvalidAmount", ErrInvalidAmount, 4001},
		{"UnknownGateway", ErrUnknownGateway, 4002},
		{"DisabledGateway", ErrGatewayDisabled, 4002},
		{"InvalidCallback", ErrInvalidCallback, 4003},
		{"InvalidTransactionID", ErrInvalidTransactionID, 4004},
		{"TransactionNotFound", ErrTransactionNotFound, 4040},
		{"StatePrecondition", NewStatePreconditionError(1, "verify", "settled", "callback_received"), 4090},
		{"CallbackMismatch", ErrCallbackMismatch, 4091},
		{"ProtocolError", NewProtocolError("mellat", "bpPayRequest", "21", ""), 4220},
		{"Locked", ErrLocked, 4230},
		{"TransportFault", NewTransportFault("sadad", "PaymentUtility", "Timeout", true, errors.New("deadline")), 5020},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidTransactionID), 4004},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	declined := &GatewayFailure{
		TransactionID: 7,
		Kind:          "declined",
		Err:           NewProtocolError("mellat", "bpVerifyRequest", "12", ""),
	}
	unreachable := &GatewayFailure{
		TransactionID: 7,
		Kind:          "bank_unavailable",
		Err:           NewTransportFault("mellat", "bpPayRequest", "Timeout", true, errors.New("deadline")),
	}

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"BadRequest", ErrInvalidAmount, http.StatusBadRequest},
		{"NotFound", ErrTransactionNotFound, http.StatusNotFound},
		{"Conflict", NewStatePreconditionError(1, "settle", "failed", "verified"), http.StatusConflict},
		{"Declined", declined, http.StatusUnprocessableEntity},
		{"Unreachable", unreachable, http.StatusBadGateway},
		{"Misconfigured", ErrGatewayMisconfigured, http.StatusServiceUnavailable},
		{"Internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.expected {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.expected)
			}
		})
	}
}

func TestStatePreconditionError(t *testing.T) {
	err := NewStatePreconditionError(42, "verify", "", "callback_received")

	expected := "cannot verify transaction 42: status is missing, expected callback_received"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrStatePrecondition) {
		t.Errorf("errors.Is(err, ErrStatePrecondition) = false, want true")
	}
	if IsRetryable(err) {
		t.Errorf("state precondition errors must never be retryable")
	}
}

func TestGatewayFailure(t *testing.T) {
	cause := NewProtocolError("sadad", "CheckRequestStatusResult", "77", "")
	failure := &GatewayFailure{
		TransactionID: 9,
		Gateway:       "sadad",
		Operation:     "verify",
		Code:          "77",
		Kind:          "unknown",
		Messages:      map[string]string{"fa": "خطای ناشناخته", "en": "Unknown Error"},
		Err:           cause,
	}

	if !errors.Is(failure, ErrPaymentFailed) {
		t.Errorf("errors.Is(failure, ErrPaymentFailed) = false, want true")
	}
	if !errors.Is(failure, ErrUnknownOutcome) {
		t.Errorf("errors.Is(failure, ErrUnknownOutcome) = false, want true")
	}
	if !errors.Is(failure, ErrBankRejected) {
		t.Errorf("the protocol error cause should stay reachable through Unwrap")
	}

	var protocolErr *ProtocolError
	if !errors.As(failure, &protocolErr) || protocolErr.Code != "77" {
		t.Errorf("errors.As should expose the bank code")
	}
	if failure.Message("fa") != "خطای ناشناخته" {
		t.Errorf("Message(fa) = %s", failure.Message("fa"))
	}
	if failure.Message("de") != "Unknown Error" {
		t.Errorf("Message(de) should fall back to English, got %s", failure.Message("de"))
	}
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Nil", nil, false},
		{"Transport", NewTransportFault("mellat", "bpSettleRequest", "Timeout", true, errors.New("deadline")), true},
		{"BareProtocol", NewProtocolError("mellat", "bpSettleRequest", "34", ""), false},
		{"RetryableFailure", &GatewayFailure{Retryable: true}, true},
		{"FinalFailure", &GatewayFailure{Retryable: false}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.expected {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.expected)
			}
		})
	}
}

func TestLogFieldsOf(t *testing.T) {
	fields := LogFieldsOf(fmt.Errorf("verify: %w", NewTransportFault("mellat", "bpVerifyRequest", "SoapFault", false, errors.New("server busy"))))
	if fields["error_type"] != "transport_fault" {
		t.Errorf("error_type = %v, want transport_fault", fields["error_type"])
	}
	if fields["fault_code"] != "SoapFault" {
		t.Errorf("fault_code = %v, want SoapFault", fields["fault_code"])
	}

	plain := LogFieldsOf(errors.New("plain"))
	if plain["error"] != "plain" || plain["error_code"] != CodeInternalServer {
		t.Errorf("unexpected plain fields: %v", plain)
	}
}
