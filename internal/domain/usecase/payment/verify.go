package payment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
)

// Verify confirms server-to-server that a callback-received payment cleared.
// A transport fault leaves the record in callback_received so the call can be repeated;
// a bank rejection fails it, except the bank's "already verified" answer which counts as success.
func (s *Service) Verify(ctx context.Context, transactionID uint64) (txn *entity.Transaction, err error) {
	ctx, span := s.startSpan(ctx, OpVerify, attribute.Int64("payment.transaction_id", int64(transactionID)))
	defer func() { endSpan(span, err) }()

	txn, err = s.load(ctx, transactionID, OpVerify, entity.StatusCallbackReceived)
	if err != nil {
		return txn, err
	}
	return s.verify(ctx, txn)
}

func (s *Service) verify(ctx context.Context, txn *entity.Transaction) (*entity.Transaction, error) {
	adapter, settings, err := s.resolve(ctx, txn.GatewayName)
	if err != nil {
		return txn, err
	}

	verification, err := adapter.VerifyPayment(ctx, txn, settings)
	if err != nil {
		if errs.IsTransportFault(err) {
			return txn, s.recordTransportFault(ctx, txn, OpVerify, err)
		}

		outcome := s.normalizer.NormalizeError(txn.GatewayName, err)
		if outcome.Kind != entity.OutcomeAlreadyVerified {
			return txn, s.fail(ctx, txn, OpVerify, err)
		}

		s.logger.Info("Bank reports payment already verified", map[string]any{
			"transaction_id": txn.ID,
			"gateway":        txn.GatewayName,
			"code":           outcome.Code,
		})
		verification = entity.Verification{Code: outcome.Code}
	}

	code := verification.Code
	if code == "" {
		code = "0"
	}

	entry, err := txn.MarkVerified(code, "payment verified", verification.TrackingCode, verification.CardNumber, s.timeProvider)
	if err != nil {
		return txn, err
	}
	if err := s.persistTransition(ctx, txn, OpVerify, entity.StatusCallbackReceived, entry); err != nil {
		return nil, err
	}
	return txn, nil
}
