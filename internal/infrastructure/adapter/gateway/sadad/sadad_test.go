package sadad

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	gatewaymocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/gateway"
)

var settings = entity.GatewaySettings{
	Name:    entity.GatewaySadad,
	Enabled: true,
	Credentials: entity.Credentials{
		"merchant":        "000000140212345",
		"transaction_key": "key",
		"terminalId":      "24012345",
	},
}

func newTxn(status entity.Status) *entity.Transaction {
	return &entity.Transaction{
		ID:          2002,
		GatewayName: entity.GatewaySadad,
		Amount:      120000,
		RefID:       "rk-1",
		CallbackURL: "https://shop.example/callback?transaction_id=2002",
		Status:      status,
	}
}

func stringPtr(s string) *string { return &s }

func TestBeginPayment(t *testing.T) {
	testCases := []struct {
		name           string
		response       paymentUtilityResponse
		expectedRef    string
		expectedCode   string
		transportFault bool
	}{
		{
			name:        "Form and key returned",
			response:    paymentUtilityResponse{Result: "<form action='https://sadad.shaparak.ir'></form>", RequestKey: "rk-1"},
			expectedRef: "rk-1",
		},
		{
			name:         "Missing request key",
			response:     paymentUtilityResponse{Result: "<form></form>"},
			expectedCode: CodeInvalidResponse,
		},
		{
			name:         "Missing form",
			response:     paymentUtilityResponse{RequestKey: "rk-1"},
			expectedCode: CodeInvalidResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			caller := gatewaymocks.NewMockRemoteCaller(t)
			caller.On("Call", mock.Anything, mock.MatchedBy(func(call gateway.Call) bool {
				req, ok := call.Request.(paymentUtilityRequest)
				return ok &&
					call.Operation == "PaymentUtility" &&
					call.SOAPAction == "http://tempuri.org/PaymentUtility" &&
					call.NamespacePrefix == "" &&
					req.MerchantID == "000000140212345" &&
					req.TransactionKey == "key" &&
					req.TerminalID == "24012345" &&
					req.OrderID == 2002 &&
					req.Amount == 120000 &&
					req.ReturnURL == "https://shop.example/callback?transaction_id=2002"
			}), mock.Anything).Return(func(_ context.Context, _ gateway.Call, response any) error {
				*response.(*paymentUtilityResponse) = tc.response
				return nil
			}).Once()

			adapter := New(Config{}, caller, logger.NewNoopLogger())
			init, err := adapter.BeginPayment(context.Background(), newTxn(entity.StatusPending), settings)

			if tc.transportFault {
				require.Error(t, err)
				assert.True(t, errs.IsTransportFault(err))
				assert.True(t, errs.IsRetryable(err))
				return
			}

			if tc.expectedCode != "" {
				var protocolErr *errs.ProtocolError
				require.True(t, errors.As(err, &protocolErr))
				assert.Equal(t, tc.expectedCode, protocolErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedRef, init.RefID)
			assert.True(t, init.Redirect.IsForm())
			assert.Equal(t, tc.response.Result, init.Redirect.FormHTML)
		})
	}
}

func TestAcceptCallback(t *testing.T) {
	adapter := New(Config{}, gatewaymocks.NewMockRemoteCaller(t), logger.NewNoopLogger())

	result := adapter.AcceptCallback(entity.CallbackParams{"anything": "x"})

	assert.True(t, result.Success)
	assert.Empty(t, result.RefID)
}

func TestVerifyPayment(t *testing.T) {
	testCases := []struct {
		name             string
		result           *statusResult
		expectedCode     string
		expectedTracking string
		transportFault   bool
	}{
		{
			name: "Committed",
			result: &statusResult{
				AppStatusCode:        stringPtr("0"),
				AppStatusDescription: "COMMIT",
				TraceNo:              "778899",
				CustomerCardNumber:   "603799******4321",
			},
			expectedTracking: "778899",
		},
		{
			name:         "Success code without commit",
			result:       &statusResult{AppStatusCode: stringPtr("0"), AppStatusDescription: "pending"},
			expectedCode: CodeNotCommitted,
		},
		{
			name:         "Bank error code",
			result:       &statusResult{AppStatusCode: stringPtr("1056"), AppStatusDescription: "down"},
			expectedCode: "1056",
		},
		{
			name:           "Missing status code",
			result:         &statusResult{},
			transportFault: true,
		},
		{
			name:           "Missing result",
			transportFault: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			caller := gatewaymocks.NewMockRemoteCaller(t)
			caller.On("Call", mock.Anything, mock.MatchedBy(func(call gateway.Call) bool {
				req, ok := call.Request.(statusRequest)
				return ok && call.Operation == "CheckRequestStatusResult" && req.RequestKey == "rk-1" && req.OrderID == 2002
			}), mock.Anything).Return(func(_ context.Context, _ gateway.Call, response any) error {
				response.(*statusResponse).Result = tc.result
				return nil
			}).Once()

			adapter := New(Config{}, caller, logger.NewNoopLogger())
			v, err := adapter.VerifyPayment(context.Background(), newTxn(entity.StatusCallbackReceived), settings)

			if tc.transportFault {
				require.Error(t, err)
				assert.True(t, errs.IsTransportFault(err))
				assert.True(t, errs.IsRetryable(err))
				return
			}

			if tc.expectedCode != "" {
				var protocolErr *errs.ProtocolError
				require.True(t, errors.As(err, &protocolErr))
				assert.Equal(t, tc.expectedCode, protocolErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "0", v.Code)
			assert.Equal(t, tc.expectedTracking, v.TrackingCode)
			assert.Equal(t, "603799******4321", v.CardNumber)
		})
	}
}

func TestCodeTable(t *testing.T) {
	adapter := New(Config{}, gatewaymocks.NewMockRemoteCaller(t), logger.NewNoopLogger())
	table := adapter.CodeTable()

	for _, code := range []string{"1005", "1056", "1058", "1064", "1065"} {
		entry, ok := table.Lookup(code)
		require.True(t, ok, code)
		assert.True(t, entry.Retryable, code)
	}
	for code, entry := range table {
		if entry.Retryable {
			assert.Contains(t, []string{"1005", "1056", "1058", "1064", "1065"}, code)
		}
		assert.NotEmpty(t, entry.Message.FA, code)
		assert.NotEmpty(t, entry.Message.EN, code)
	}

	_, ok := table.Lookup(CodeNotCommitted)
	assert.True(t, ok)
	assert.True(t, adapter.SinglePhase())
	assert.NoError(t, adapter.SettlePayment(context.Background(), newTxn(entity.StatusVerified), settings))
}
