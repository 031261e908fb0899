package mellat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	coremocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/core"
	gatewaymocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/gateway"
)

var settings = entity.GatewaySettings{
	Name:    entity.GatewayMellat,
	Enabled: true,
	Credentials: entity.Credentials{
		"terminalId": "1234567",
		"username":   "shop",
		"password":   "secret",
	},
}

func newAdapter(t *testing.T) (*Adapter, *gatewaymocks.MockRemoteCaller) {
	caller := gatewaymocks.NewMockRemoteCaller(t)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)).Maybe()
	return New(Config{}, caller, mockTime, logger.NewNoopLogger()), caller
}

// respond fills the decoded response the way the SOAP client would
func respond(value string) func(context.Context, gateway.Call, any) error {
	return func(_ context.Context, _ gateway.Call, response any) error {
		response.(*returnResponse).Return = value
		return nil
	}
}

func newTxn() *entity.Transaction {
	return &entity.Transaction{
		ID:          1001,
		GatewayName: entity.GatewayMellat,
		Amount:      50000,
		CallbackURL: "https://shop.example/callback?transaction_id=1001",
		Status:      entity.StatusPending,
	}
}

func TestBeginPayment(t *testing.T) {
	t.Run("Reference obtained", func(t *testing.T) {
		adapter, caller := newAdapter(t)

		caller.On("Call", mock.Anything, mock.MatchedBy(func(call gateway.Call) bool {
			req, ok := call.Request.(payRequest)
			return ok &&
				call.Operation == "bpPayRequest" &&
				call.Endpoint == DefaultEndpoint &&
				call.Namespace == Namespace &&
				req.TerminalID == "1234567" &&
				req.UserName == "shop" &&
				req.UserPassword == "secret" &&
				req.OrderID == 1001 &&
				req.Amount == 50000 &&
				req.LocalDate == "20240301" &&
				req.LocalTime == "090507" &&
				req.CallBackURL == "https://shop.example/callback?transaction_id=1001"
		}), mock.Anything).Return(respond("0,AF82041a2Bf6989c7fF9")).Once()

		init, err := adapter.BeginPayment(context.Background(), newTxn(), settings)

		require.NoError(t, err)
		assert.Equal(t, "AF82041a2Bf6989c7fF9", init.RefID)
		assert.Equal(t, entity.RedirectPost, init.Redirect.Method)
		assert.Equal(t, DefaultStartPayURL, init.Redirect.URL)
		assert.Equal(t, map[string]string{"RefId": "AF82041a2Bf6989c7fF9"}, init.Redirect.Fields)
	})

	testCases := []struct {
		name         string
		setupMocks   func(caller *gatewaymocks.MockRemoteCaller)
		expectedErr  error
		expectedCode string
	}{
		{
			name: "Bank rejects with code",
			setupMocks: func(caller *gatewaymocks.MockRemoteCaller) {
				caller.On("Call", mock.Anything, mock.Anything, mock.Anything).Return(respond("21")).Once()
			},
			expectedErr:  errs.ErrBankRejected,
			expectedCode: "21",
		},
		{
			name: "Success without reference",
			setupMocks: func(caller *gatewaymocks.MockRemoteCaller) {
				caller.On("Call", mock.Anything, mock.Anything, mock.Anything).Return(respond("0,")).Once()
			},
			expectedErr:  errs.ErrTransport,
			expectedCode: errs.FaultMalformed,
		},
		{
			name: "Transport fault passes through",
			setupMocks: func(caller *gatewaymocks.MockRemoteCaller) {
				caller.On("Call", mock.Anything, mock.Anything, mock.Anything).
					Return(errs.NewTransportFault(entity.GatewayMellat, "bpPayRequest", errs.FaultTimeout, true, context.DeadlineExceeded)).Once()
			},
			expectedErr:  errs.ErrTransport,
			expectedCode: errs.FaultTimeout,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, caller := newAdapter(t)
			tc.setupMocks(caller)

			_, err := adapter.BeginPayment(context.Background(), newTxn(), settings)

			assert.ErrorIs(t, err, tc.expectedErr)

			var protocolErr *errs.ProtocolError
			var fault *errs.TransportFault
			switch {
			case errors.As(err, &protocolErr):
				assert.Equal(t, tc.expectedCode, protocolErr.Code)
			case errors.As(err, &fault):
				assert.Equal(t, tc.expectedCode, fault.Code)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestAcceptCallback(t *testing.T) {
	adapter, _ := newAdapter(t)

	testCases := []struct {
		name     string
		params   entity.CallbackParams
		expected entity.CallbackResult
	}{
		{
			name: "Paid",
			params: entity.CallbackParams{
				"RefId":           "AF82041a2Bf6989c7fF9",
				"ResCode":         "0",
				"SaleOrderId":     "1001",
				"SaleReferenceId": "139889021",
				"CardHolderPan":   "603799******1234",
			},
			expected: entity.CallbackResult{
				Success:      true,
				Code:         "0",
				RefID:        "AF82041a2Bf6989c7fF9",
				TrackingCode: "139889021",
				CardNumber:   "603799******1234",
				RefIDBound:   true,
			},
		},
		{
			name:     "Cancelled by customer",
			params:   entity.CallbackParams{"RefId": "AF82041a2Bf6989c7fF9", "ResCode": "17"},
			expected: entity.CallbackResult{Code: "17", RefID: "AF82041a2Bf6989c7fF9", RefIDBound: true},
		},
		{
			name:     "Paid without sale reference",
			params:   entity.CallbackParams{"RefId": "AF82041a2Bf6989c7fF9", "ResCode": "0"},
			expected: entity.CallbackResult{Code: CodeIncompleteCallback, RefID: "AF82041a2Bf6989c7fF9", RefIDBound: true},
		},
		{
			name:     "No parameters",
			params:   entity.CallbackParams{},
			expected: entity.CallbackResult{RefIDBound: true},
		},
		{
			name:     "Failure code without reference",
			params:   entity.CallbackParams{"transaction_id": "1001", "ResCode": "17"},
			expected: entity.CallbackResult{Code: "17", RefIDBound: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, adapter.AcceptCallback(tc.params))
		})
	}
}

func TestVerifyAndSettle(t *testing.T) {
	paid := newTxn()
	paid.Status = entity.StatusCallbackReceived
	paid.RefID = "AF82041a2Bf6989c7fF9"
	paid.TrackingCode = "139889021"
	paid.CardNumber = "603799******1234"

	t.Run("Verify succeeds", func(t *testing.T) {
		adapter, caller := newAdapter(t)
		caller.On("Call", mock.Anything, mock.MatchedBy(func(call gateway.Call) bool {
			req, ok := call.Request.(confirmRequest)
			return ok &&
				call.Operation == "bpVerifyRequest" &&
				req.OrderID == 1001 &&
				req.SaleOrderID == 1001 &&
				req.SaleReferenceID == "139889021"
		}), mock.Anything).Return(respond("0")).Once()

		v, err := adapter.VerifyPayment(context.Background(), paid, settings)

		require.NoError(t, err)
		assert.Equal(t, "0", v.Code)
		assert.Equal(t, "139889021", v.TrackingCode)
	})

	t.Run("Verify reports already verified as a protocol code", func(t *testing.T) {
		adapter, caller := newAdapter(t)
		caller.On("Call", mock.Anything, mock.Anything, mock.Anything).Return(respond("43")).Once()

		_, err := adapter.VerifyPayment(context.Background(), paid, settings)

		var protocolErr *errs.ProtocolError
		require.True(t, errors.As(err, &protocolErr))
		assert.Equal(t, CodeAlreadyVerified, protocolErr.Code)
	})

	t.Run("Verify without sale reference makes no call", func(t *testing.T) {
		adapter, _ := newAdapter(t)
		txn := newTxn()
		txn.Status = entity.StatusCallbackReceived

		_, err := adapter.VerifyPayment(context.Background(), txn, settings)

		assert.ErrorIs(t, err, errs.ErrBankRejected)
	})

	t.Run("Settle succeeds", func(t *testing.T) {
		adapter, caller := newAdapter(t)
		caller.On("Call", mock.Anything, mock.MatchedBy(func(call gateway.Call) bool {
			return call.Operation == "bpSettleRequest"
		}), mock.Anything).Return(respond("0")).Once()

		assert.NoError(t, adapter.SettlePayment(context.Background(), paid, settings))
	})

	t.Run("Settle with empty return is malformed", func(t *testing.T) {
		adapter, caller := newAdapter(t)
		caller.On("Call", mock.Anything, mock.Anything, mock.Anything).Return(respond("")).Once()

		err := adapter.SettlePayment(context.Background(), paid, settings)

		assert.True(t, errs.IsTransportFault(err))
	})
}

func TestCodeTable(t *testing.T) {
	adapter, _ := newAdapter(t)
	table := adapter.CodeTable()

	cases := map[string]entity.OutcomeKind{
		"0":  entity.OutcomeSuccess,
		"17": entity.OutcomeCancelled,
		"43": entity.OutcomeAlreadyVerified,
		"45": entity.OutcomeAlreadySettled,
		"48": entity.OutcomeReversed,
		"34": entity.OutcomeBankUnavailable,
	}
	for code, kind := range cases {
		entry, ok := table.Lookup(code)
		require.True(t, ok, code)
		assert.Equal(t, kind, entry.Kind, code)
		assert.NotEmpty(t, entry.Message.FA, code)
		assert.NotEmpty(t, entry.Message.EN, code)
	}

	assert.False(t, adapter.SinglePhase())
	assert.Equal(t, []string{"terminalId", "username", "password"}, adapter.RequiredCredentials())
}
