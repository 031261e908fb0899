// Package mellat implements the two-phase Behpardakht Mellat gateway.
// A paid callback must be verified with bpVerifyRequest and then committed
// with bpSettleRequest before the merchant receives the money.
package mellat

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
)

// Defaults published by the bank
const (
	DefaultEndpoint    = "https://bpm.shaparak.ir/pgwchannel/services/pgw"
	DefaultStartPayURL = "https://bpm.shaparak.ir/pgwchannel/startpay.mellat"
	Namespace          = "http://interfaces.core.sw.bps.com/"
)

// Credential keys
const (
	CredTerminalID = "terminalId"
	CredUsername   = "username"
	CredPassword   = "password"
)

const (
	opPay    = "bpPayRequest"
	opVerify = "bpVerifyRequest"
	opSettle = "bpSettleRequest"
)

// Config holds the endpoints of one Mellat deployment
type Config struct {
	Endpoint    string
	StartPayURL string
}

// Adapter talks to the Mellat web service
type Adapter struct {
	cfg          Config
	caller       gateway.RemoteCaller
	timeProvider core.TimeProvider
	logger       core.Logger
}

// Ensure Adapter implements the gateway.Adapter interface
var _ gateway.Adapter = (*Adapter)(nil)

// New creates a Mellat adapter. Empty endpoints fall back to the bank defaults.
func New(cfg Config, caller gateway.RemoteCaller, timeProvider core.TimeProvider, logger core.Logger) *Adapter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.StartPayURL == "" {
		cfg.StartPayURL = DefaultStartPayURL
	}
	return &Adapter{
		cfg:          cfg,
		caller:       caller,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Name returns the registry key of the gateway
func (a *Adapter) Name() string { return entity.GatewayMellat }

// SinglePhase reports false; Mellat needs bpSettleRequest after verification
func (a *Adapter) SinglePhase() bool { return false }

// RequiredCredentials lists the credential keys sent with every request
func (a *Adapter) RequiredCredentials() []string {
	return []string{CredTerminalID, CredUsername, CredPassword}
}

// CodeTable returns the ResCode table shared by all Mellat operations
func (a *Adapter) CodeTable() entity.CodeTable { return codeTable }

type payRequest struct {
	TerminalID     string `xml:"terminalId"`
	UserName       string `xml:"userName"`
	UserPassword   string `xml:"userPassword"`
	OrderID        uint64 `xml:"orderId"`
	Amount         int64  `xml:"amount"`
	LocalDate      string `xml:"localDate"`
	LocalTime      string `xml:"localTime"`
	AdditionalData string `xml:"additionalData"`
	CallBackURL    string `xml:"callBackUrl"`
	PayerID        int64  `xml:"payerId"`
}

// confirmRequest is shared by bpVerifyRequest and bpSettleRequest
type confirmRequest struct {
	TerminalID      string `xml:"terminalId"`
	UserName        string `xml:"userName"`
	UserPassword    string `xml:"userPassword"`
	OrderID         uint64 `xml:"orderId"`
	SaleOrderID     uint64 `xml:"saleOrderId"`
	SaleReferenceID string `xml:"saleReferenceId"`
}

type returnResponse struct {
	Return string `xml:"return"`
}

// BeginPayment calls bpPayRequest. The bank answers "<code>,<refId>".
func (a *Adapter) BeginPayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) (gateway.Initiation, error) {
	creds := settings.Credentials
	now := a.timeProvider.Now()

	req := payRequest{
		TerminalID:   creds.Get(CredTerminalID),
		UserName:     creds.Get(CredUsername),
		UserPassword: creds.Get(CredPassword),
		OrderID:      txn.ID,
		Amount:       txn.Amount,
		LocalDate:    now.Format("20060102"),
		LocalTime:    now.Format("150405"),
		CallBackURL:  txn.CallbackURL,
		PayerID:      0,
	}

	var resp returnResponse
	if err := a.caller.Call(ctx, a.call(opPay, req), &resp); err != nil {
		return gateway.Initiation{}, err
	}

	code, refID, _ := strings.Cut(strings.TrimSpace(resp.Return), ",")
	code = strings.TrimSpace(code)
	if code != CodeSuccess {
		return gateway.Initiation{}, errs.NewProtocolError(a.Name(), opPay, code, "")
	}

	refID = strings.TrimSpace(refID)
	if refID == "" {
		return gateway.Initiation{}, errs.NewTransportFault(a.Name(), opPay, errs.FaultMalformed, false,
			fmt.Errorf("no reference in return value %q", resp.Return))
	}

	a.logger.Debug("Mellat reference obtained", map[string]any{
		"transaction_id": txn.ID,
		"ref_id":         refID,
	})

	return gateway.Initiation{
		RefID:    refID,
		Redirect: entity.NewFormRedirect(a.cfg.StartPayURL, map[string]string{"RefId": refID}),
	}, nil
}

// AcceptCallback reads ResCode, RefId, SaleReferenceId and CardHolderPan
func (a *Adapter) AcceptCallback(params entity.CallbackParams) entity.CallbackResult {
	result := entity.CallbackResult{
		Code:         params.Get("ResCode"),
		RefID:        params.Get("RefId"),
		TrackingCode: params.Get("SaleReferenceId"),
		CardNumber:   params.Get("CardHolderPan"),
		RefIDBound:   true,
	}

	if result.Code != CodeSuccess {
		return result
	}
	if result.TrackingCode == "" {
		result.Code = CodeIncompleteCallback
		return result
	}

	result.Success = true
	return result
}

// VerifyPayment calls bpVerifyRequest with the sale reference captured from the callback
func (a *Adapter) VerifyPayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) (entity.Verification, error) {
	code, err := a.confirm(ctx, opVerify, txn, settings)
	if err != nil {
		return entity.Verification{}, err
	}
	return entity.Verification{
		Code:         code,
		TrackingCode: txn.TrackingCode,
		CardNumber:   txn.CardNumber,
	}, nil
}

// SettlePayment calls bpSettleRequest
func (a *Adapter) SettlePayment(ctx context.Context, txn *entity.Transaction, settings entity.GatewaySettings) error {
	_, err := a.confirm(ctx, opSettle, txn, settings)
	return err
}

func (a *Adapter) confirm(ctx context.Context, operation string, txn *entity.Transaction, settings entity.GatewaySettings) (string, error) {
	if txn.TrackingCode == "" {
		return "", errs.NewProtocolError(a.Name(), operation, CodeIncompleteCallback, "missing sale reference id")
	}

	creds := settings.Credentials
	req := confirmRequest{
		TerminalID:      creds.Get(CredTerminalID),
		UserName:        creds.Get(CredUsername),
		UserPassword:    creds.Get(CredPassword),
		OrderID:         txn.ID,
		SaleOrderID:     txn.ID,
		SaleReferenceID: txn.TrackingCode,
	}

	var resp returnResponse
	if err := a.caller.Call(ctx, a.call(operation, req), &resp); err != nil {
		return "", err
	}

	code := strings.TrimSpace(resp.Return)
	if code == "" {
		return "", errs.NewTransportFault(a.Name(), operation, errs.FaultMalformed, false,
			fmt.Errorf("empty return value"))
	}
	if code != CodeSuccess {
		return code, errs.NewProtocolError(a.Name(), operation, code, "")
	}
	return code, nil
}

func (a *Adapter) call(operation string, request any) gateway.Call {
	return gateway.Call{
		Gateway:         a.Name(),
		Endpoint:        a.cfg.Endpoint,
		Namespace:       Namespace,
		NamespacePrefix: "ns1",
		Operation:       operation,
		Request:         request,
	}
}

