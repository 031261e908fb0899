package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/usecase/callback"
)

// Resume applies a browser callback to its record. The callback is untrusted:
// it can only fail the record or let it proceed to verification. A negative
// indicator fails the record without another bank call.
func (s *Service) Resume(ctx context.Context, params entity.CallbackParams) (txn *entity.Transaction, err error) {
	ctx, span := s.startSpan(ctx, OpResume)
	defer func() { endSpan(span, err) }()

	id, err := callback.ExtractTransactionID(params)
	if err != nil {
		s.logger.Warn("Callback without a usable transaction id", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}
	span.SetAttributes(attribute.Int64("payment.transaction_id", int64(id)))

	txn, err = s.uow.GetTransactionRepository(ctx).GetByID(ctx, id)
	if errors.Is(err, errs.ErrTransactionNotFound) {
		return nil, s.rejectState(id, OpResume, "", entity.StatusRefIDObtained)
	}
	if err != nil {
		return nil, err
	}

	return s.resume(ctx, txn, params)
}

func (s *Service) resume(ctx context.Context, txn *entity.Transaction, params entity.CallbackParams) (*entity.Transaction, error) {
	if txn.Status != entity.StatusRefIDObtained {
		return txn, s.rejectState(txn.ID, OpResume, string(txn.Status), entity.StatusRefIDObtained)
	}

	adapter, err := s.registry.Get(txn.GatewayName)
	if err != nil {
		return txn, err
	}

	result := adapter.AcceptCallback(params)

	if (result.RefIDBound || result.RefID != "") && result.RefID != txn.RefID {
		s.logger.Warn("Callback reference does not match transaction", map[string]any{
			"transaction_id": txn.ID,
			"gateway":        txn.GatewayName,
			"callback_ref":   result.RefID,
		})
		return txn, fmt.Errorf("%w: transaction %d", errs.ErrCallbackMismatch, txn.ID)
	}

	if !result.Success {
		cause := errs.NewProtocolError(txn.GatewayName, "callback", result.Code, "")
		return txn, s.fail(ctx, txn, OpResume, cause)
	}

	entry, err := txn.MarkCallbackReceived(result.TrackingCode, result.CardNumber, s.timeProvider)
	if err != nil {
		return txn, err
	}
	if err := s.persistTransition(ctx, txn, OpResume, entity.StatusRefIDObtained, entry); err != nil {
		return nil, err
	}
	return txn, nil
}

// Complete runs the whole browser-return path: resume, verify and settle
func (s *Service) Complete(ctx context.Context, params entity.CallbackParams) (*entity.Transaction, error) {
	txn, err := s.Resume(ctx, params)
	if err != nil {
		return txn, err
	}

	txn, err = s.Verify(ctx, txn.ID)
	if err != nil {
		return txn, err
	}

	return s.Settle(ctx, txn.ID)
}
