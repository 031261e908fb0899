package payment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
)

// Settle commits a verified payment. Single-phase gateways settle without a
// bank call, and the bank's "already settled" answer counts as success.
func (s *Service) Settle(ctx context.Context, transactionID uint64) (txn *entity.Transaction, err error) {
	ctx, span := s.startSpan(ctx, OpSettle, attribute.Int64("payment.transaction_id", int64(transactionID)))
	defer func() { endSpan(span, err) }()

	txn, err = s.load(ctx, transactionID, OpSettle, entity.StatusVerified)
	if err != nil {
		return txn, err
	}
	return s.settle(ctx, txn)
}

func (s *Service) settle(ctx context.Context, txn *entity.Transaction) (*entity.Transaction, error) {
	adapter, settings, err := s.resolve(ctx, txn.GatewayName)
	if err != nil {
		return txn, err
	}

	code, message := "0", "payment settled"
	if adapter.SinglePhase() {
		message = "settled by verification"
	} else if err := adapter.SettlePayment(ctx, txn, settings); err != nil {
		if errs.IsTransportFault(err) {
			return txn, s.recordTransportFault(ctx, txn, OpSettle, err)
		}

		outcome := s.normalizer.NormalizeError(txn.GatewayName, err)
		if outcome.Kind != entity.OutcomeAlreadySettled {
			return txn, s.fail(ctx, txn, OpSettle, err)
		}
		code, message = outcome.Code, "payment already settled"
	}

	entry, err := txn.MarkSettled(code, message, s.timeProvider)
	if err != nil {
		return txn, err
	}
	if err := s.persistTransition(ctx, txn, OpSettle, entity.StatusVerified, entry); err != nil {
		return nil, err
	}
	return txn, nil
}
