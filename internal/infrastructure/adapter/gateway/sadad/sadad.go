// Package sadad implements the single-phase Sadad (Bank Melli) gateway.
// CheckRequestStatusResult both verifies and commits the payment, so there is
// no separate settlement call.
package sadad

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
)

// Defaults published by the bank
const (
	DefaultEndpoint = "https://sadad.shaparak.ir/services/MerchantUtility.asmx"
	Namespace       = "http://tempuri.org/"
)

// Credential keys
const (
	CredMerchant       = "merchant"
	CredTransactionKey = "transactionKey"
	CredTerminalID     = "terminalId"
)

const (
	opPay    = "PaymentUtility"
	opStatus = "CheckRequestStatusResult"

	statusCommit = "commit"
)

// Config holds the endpoint of one Sadad deployment
type Config struct {
	Endpoint string
}

// Adapter talks to the Sadad merchant utility service
type Adapter struct {
	cfg    Config
	caller gateway.RemoteCaller
	logger core.Logger
}

// Ensure Adapter implements the gateway.Adapter interface
var _ gateway.Adapter = (*Adapter)(nil)

// New creates a Sadad adapter
func New(cfg Config, caller gateway.RemoteCaller, logger core.Logger) *Adapter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Adapter{cfg: cfg, caller: caller, logger: logger}
}

// Name returns the registry key of the gateway
func (a *Adapter) Name() string { return entity.GatewaySadad }

// SinglePhase reports that the status check also settles the payment
func (a *Adapter) SinglePhase() bool { return true }

// RequiredCredentials lists the credential keys BeginPayment and VerifyPayment read
func (a *Adapter) RequiredCredentials() []string {
	return []string{CredMerchant, CredTransactionKey, CredTerminalID}
}

// CodeTable returns the AppStatusCode table
func (a *Adapter) CodeTable() entity.CodeTable { return codeTable }

type paymentUtilityRequest struct {
	MerchantID     string `xml:"merchantID"`
	Amount         int64  `xml:"amount"`
	OrderID        uint64 `xml:"orderId"`
	TransactionKey string `xml:"transactionKey"`
	TerminalID     string `xml:"terminalId"`
	ReturnURL      string `xml:"returnUrl"`
}

type paymentUtilityResponse struct {
	Result     string `xml:"PaymentUtilityResult"`
	RequestKey string `xml:"RequestKey"`
}

type statusRequest struct {
	OrderID        uint64 `xml:"orderId"`
	MerchantID     string `xml:"merchantID"`
	TerminalID     string `xml:"terminalId"`
	TransactionKey string `xml:"transactionKey"`
	RequestKey     string `xml:"requestKey"`
	Amount         int64  `xml:"amount"`
}

type statusResult struct {
	AppStatusCode        *string `xml:"AppStatusCode"`
	AppStatusDescription string  `xml:"AppStatusDescription"`
	TraceNo              string  `xml:"TraceNo"`
	CustomerCardNumber   string  `xml:"CustomerCardNumber"`
}

type statusResponse struct {
	Result *statusResult `xml:"CheckRequestStatusResultResult"`
}

// BeginPayment calls PaymentUtility. The bank returns the request key and a
// ready-made HTML form that posts the customer to the payment page.
func (a *Adapter) BeginPayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) (gateway.Initiation, error) {
	creds := settings.Credentials
	req := paymentUtilityRequest{
		MerchantID:     creds.Get(CredMerchant),
		Amount:         txn.Amount,
		OrderID:        txn.ID,
		TransactionKey: creds.Get(CredTransactionKey),
		TerminalID:     creds.Get(CredTerminalID),
		ReturnURL:      txn.CallbackURL,
	}

	var resp paymentUtilityResponse
	if err := a.caller.Call(ctx, a.call(opPay, req), &resp); err != nil {
		return gateway.Initiation{}, err
	}

	requestKey := strings.TrimSpace(resp.RequestKey)
	form := strings.TrimSpace(resp.Result)
	if requestKey == "" || form == "" {
		return gateway.Initiation{}, errs.NewProtocolError(a.Name(), opPay, CodeInvalidResponse, "missing request key or payment form")
	}

	return gateway.Initiation{
		RefID:    requestKey,
		Redirect: entity.NewRawFormRedirect(form),
	}, nil
}

// AcceptCallback always lets the record proceed; Sadad's return carries no
// trustworthy indicator and the status check decides the outcome.
func (a *Adapter) AcceptCallback(entity.CallbackParams) entity.CallbackResult {
	return entity.CallbackResult{Success: true, Code: CodeSuccess}
}

// VerifyPayment calls CheckRequestStatusResult, which commits the payment on success
func (a *Adapter) VerifyPayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) (entity.Verification, error) {
	creds := settings.Credentials
	req := statusRequest{
		OrderID:        txn.ID,
		MerchantID:     creds.Get(CredMerchant),
		TerminalID:     creds.Get(CredTerminalID),
		TransactionKey: creds.Get(CredTransactionKey),
		RequestKey:     txn.RefID,
		Amount:         txn.Amount,
	}

	var resp statusResponse
	if err := a.caller.Call(ctx, a.call(opStatus, req), &resp); err != nil {
		return entity.Verification{}, err
	}

	// the bank may already have committed; keep the record retryable
	if resp.Result == nil || resp.Result.AppStatusCode == nil {
		return entity.Verification{}, errs.NewTransportFault(a.Name(), opStatus, errs.FaultMalformed, false,
			errors.New("missing status code"))
	}

	result := resp.Result
	code := strings.TrimSpace(*result.AppStatusCode)
	description := strings.ToLower(strings.TrimSpace(result.AppStatusDescription))

	a.logger.Debug("Sadad status received", map[string]any{
		"transaction_id": txn.ID,
		"status_code":    code,
		"description":    description,
	})

	if code != CodeSuccess {
		return entity.Verification{}, errs.NewProtocolError(a.Name(), opStatus, code, result.AppStatusDescription)
	}
	if description != statusCommit {
		return entity.Verification{}, errs.NewProtocolError(a.Name(), opStatus, CodeNotCommitted, result.AppStatusDescription)
	}

	return entity.Verification{
		Code:         code,
		TrackingCode: strings.TrimSpace(result.TraceNo),
		CardNumber:   strings.TrimSpace(result.CustomerCardNumber),
	}, nil
}

// SettlePayment is never called for single-phase gateways
func (a *Adapter) SettlePayment(context.Context, *entity.Transaction, entity.GatewaySettings) error {
	return nil
}

func (a *Adapter) call(operation string, request any) gateway.Call {
	return gateway.Call{
		Gateway:    a.Name(),
		Endpoint:   a.cfg.Endpoint,
		Namespace:  Namespace,
		Operation:  operation,
		SOAPAction: Namespace + operation,
		Request:    request,
	}
}
