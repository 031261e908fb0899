package payment

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/usecase/callback"
)

// Initiate creates a pending record, asks the gateway for a reference and
// returns where the customer must go. When the gateway call fails the record
// is moved to failed and the unified failure is returned together with the record;
// it never stays pending. There is no silent retry.
func (s *Service) Initiate(ctx context.Context, req usecase.InitiateRequest) (result *usecase.InitiateResult, err error) {
	req.Gateway = strings.ToLower(strings.TrimSpace(req.Gateway))

	ctx, span := s.startSpan(ctx, OpInitiate,
		attribute.String("payment.gateway", req.Gateway),
		attribute.Int64("payment.amount", req.Amount),
	)
	defer func() { endSpan(span, err) }()

	if err := s.validator.ValidateInitiate(req); err != nil {
		return nil, err
	}

	adapter, settings, err := s.resolve(ctx, req.Gateway)
	if err != nil {
		return nil, err
	}

	baseURL := req.CallbackURL
	if baseURL == "" {
		baseURL = settings.CallbackBaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%w: no callback URL configured for %s", errs.ErrInvalidCallbackURL, req.Gateway)
	}

	id := s.idGenerator.NextID()
	callbackURL, err := callback.Build(baseURL, id)
	if err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(id, adapter.Name(), req.Amount, callbackURL, s.timeProvider)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("payment.transaction_id", int64(id)))

	if err := s.uow.GetTransactionRepository(ctx).Create(ctx, txn); err != nil {
		s.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": id,
			"gateway":        txn.GatewayName,
			"error":          err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"transaction_id": id,
		"gateway":        txn.GatewayName,
		"amount":         txn.Amount,
	})

	if err := settings.Credentials.Require(adapter.RequiredCredentials()...); err != nil {
		return &usecase.InitiateResult{Transaction: txn}, s.fail(ctx, txn, OpInitiate, err)
	}

	initiation, err := adapter.BeginPayment(ctx, txn, settings)
	if err != nil {
		return &usecase.InitiateResult{Transaction: txn}, s.fail(ctx, txn, OpInitiate, err)
	}

	entry, err := txn.MarkRefIDObtained(initiation.RefID, s.timeProvider)
	if err != nil {
		fault := errs.NewTransportFault(txn.GatewayName, OpInitiate, errs.FaultMalformed, false, err)
		return &usecase.InitiateResult{Transaction: txn}, s.fail(ctx, txn, OpInitiate, fault)
	}

	if err := s.persistTransition(ctx, txn, OpInitiate, entity.StatusPending, entry); err != nil {
		return nil, err
	}

	return &usecase.InitiateResult{
		Transaction: txn,
		Redirect:    initiation.Redirect,
	}, nil
}
