package normalizer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func testTable() entity.CodeTable {
	return entity.CodeTable{
		"0":  {Kind: entity.OutcomeSuccess, Message: entity.LocalizedMessage{FA: "موفق", EN: "Success"}},
		"17": {Kind: entity.OutcomeCancelled, Message: entity.LocalizedMessage{FA: "انصراف", EN: "Cancelled"}},
		"34": {Kind: entity.OutcomeBankUnavailable, Message: entity.LocalizedMessage{FA: "خطای سیستمی", EN: "System error"}, Retryable: true},
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(map[string]entity.CodeTable{"bank": testTable()})

	tests := []struct {
		name          string
		gateway       string
		code          string
		expectedKind  entity.OutcomeKind
		expectedRetry bool
		expectedEN    string
	}{
		{"Known success", "bank", "0", entity.OutcomeSuccess, false, "Success"},
		{"Known cancel", "bank", "17", entity.OutcomeCancelled, false, "Cancelled"},
		{"Retryable code", "bank", "34", entity.OutcomeBankUnavailable, true, "System error"},
		{"Unknown code", "bank", "77", entity.OutcomeUnknown, false, "Unknown Error"},
		{"Unregistered gateway", "other", "0", entity.OutcomeUnknown, false, "Unknown Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := n.Normalize(tt.gateway, tt.code, "raw")

			assert.Equal(t, tt.expectedKind, outcome.Kind)
			assert.Equal(t, tt.expectedRetry, outcome.Retryable)
			assert.Equal(t, tt.expectedEN, outcome.Text(entity.LocaleEN))
			assert.Equal(t, tt.code, outcome.Code)
			assert.Equal(t, "raw", outcome.RawMessage)
		})
	}

	t.Run("Unknown code has a Persian message", func(t *testing.T) {
		outcome := n.Normalize("bank", "77", "")
		assert.Equal(t, "خطای ناشناخته", outcome.Text(entity.LocaleFA))
	})
}

func TestNormalizeError(t *testing.T) {
	n := NewNormalizer(nil)
	n.Register("bank", testTable())

	tests := []struct {
		name          string
		err           error
		expectedKind  entity.OutcomeKind
		expectedCode  string
		expectedRetry bool
	}{
		{
			name:          "Protocol error uses the code table",
			err:           fmt.Errorf("verify: %w", errs.NewProtocolError("bank", "verify", "17", "")),
			expectedKind:  entity.OutcomeCancelled,
			expectedCode:  "17",
			expectedRetry: false,
		},
		{
			name:          "Transport fault is retryable",
			err:           errs.NewTransportFault("bank", "verify", "SoapFault", false, errors.New("busy")),
			expectedKind:  entity.OutcomeBankUnavailable,
			expectedCode:  "SoapFault",
			expectedRetry: true,
		},
		{
			name:          "Missing credentials",
			err:           fmt.Errorf("%w: missing credentials terminalId", errs.ErrGatewayMisconfigured),
			expectedKind:  entity.OutcomeMerchantError,
			expectedCode:  CodeMisconfigured,
			expectedRetry: false,
		},
		{
			name:          "Anything else",
			err:           errors.New("boom"),
			expectedKind:  entity.OutcomeUnknown,
			expectedCode:  CodeInternal,
			expectedRetry: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := n.NormalizeError("bank", tt.err)

			assert.Equal(t, tt.expectedKind, outcome.Kind)
			assert.Equal(t, tt.expectedCode, outcome.Code)
			assert.Equal(t, tt.expectedRetry, outcome.Retryable)
		})
	}
}
