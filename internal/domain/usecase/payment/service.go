package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
)

// Operation names used in logs, metrics, spans and errors
const (
	OpInitiate = "initiate"
	OpResume   = "resume"
	OpVerify   = "verify"
	OpSettle   = "settle"
	OpExpire   = "expire"
)

const tracerName = "github.com/amirhossein-jamali/payment-gateway/usecase/payment"

// Service is the lifecycle controller. It is the only writer of transaction
// records; adapters report results and the service turns them into transitions.
type Service struct {
	uow          persistence.UnitOfWork
	registry     gateway.Registry
	settings     gateway.SettingsProvider
	normalizer   usecase.OutcomeNormalizer
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	validator    *RequestValidator
	tracer       trace.Tracer
}

// Ensure Service implements the PaymentUseCase interface
var _ usecase.PaymentUseCase = (*Service)(nil)

// NewPaymentService creates a new lifecycle controller
func NewPaymentService(
	uow persistence.UnitOfWork,
	registry gateway.Registry,
	settings gateway.SettingsProvider,
	normalizer usecase.OutcomeNormalizer,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Service {
	return &Service{
		uow:          uow,
		registry:     registry,
		settings:     settings,
		normalizer:   normalizer,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		validator:    NewRequestValidator(),
		tracer:       otel.Tracer(tracerName),
	}
}

// Get loads a record with its log
func (s *Service) Get(ctx context.Context, transactionID uint64) (*entity.Transaction, error) {
	if transactionID == 0 {
		return nil, errs.ErrInvalidTransactionID
	}
	return s.uow.GetTransactionRepository(ctx).GetByID(ctx, transactionID)
}

// load fetches a record and checks it is in the status the operation requires
func (s *Service) load(ctx context.Context, transactionID uint64, operation string, required entity.Status) (*entity.Transaction, error) {
	if transactionID == 0 {
		return nil, errs.ErrInvalidTransactionID
	}

	txn, err := s.uow.GetTransactionRepository(ctx).GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != required {
		return txn, s.rejectState(transactionID, operation, string(txn.Status), required)
	}
	return txn, nil
}

// rejectState builds a precondition error. It is logged but never written to the transaction log.
func (s *Service) rejectState(transactionID uint64, operation, actual string, required entity.Status) error {
	err := errs.NewStatePreconditionError(transactionID, operation, actual, string(required))
	s.logger.Warn("Operation rejected by state precondition", errs.LogFieldsOf(err))
	return err
}

// resolve returns the adapter and the settings for a gateway
func (s *Service) resolve(ctx context.Context, gatewayName string) (gateway.Adapter, entity.GatewaySettings, error) {
	adapter, err := s.registry.Get(gatewayName)
	if err != nil {
		return nil, entity.GatewaySettings{}, err
	}

	settings, err := s.settings.Lookup(ctx, gatewayName)
	if err != nil {
		return nil, entity.GatewaySettings{}, err
	}
	if !settings.Enabled {
		return nil, entity.GatewaySettings{}, fmt.Errorf("%w: %s", errs.ErrGatewayDisabled, gatewayName)
	}
	return adapter, settings, nil
}

// persistTransition writes the new status with a compare-and-set on expected and
// appends the transition's log entry, both inside one short database transaction
func (s *Service) persistTransition(
	ctx context.Context,
	txn *entity.Transaction,
	operation string,
	expected entity.Status,
	entry entity.LogEntry,
) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	repo := s.uow.GetTransactionRepository(txCtx)

	if err := repo.UpdateStatus(txCtx, txn, expected); err != nil {
		s.rollback(txCtx, txn.ID)
		if errors.Is(err, errs.ErrStatePrecondition) {
			return s.rejectState(txn.ID, operation, s.currentStatus(ctx, txn.ID), expected)
		}
		return err
	}

	if err := repo.AppendLog(txCtx, txn.ID, entry); err != nil {
		s.rollback(txCtx, txn.ID)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.metrics.TransitionRecorded(txn.GatewayName, string(expected), string(txn.Status))
	s.logger.Info("Transaction status changed", map[string]any{
		"transaction_id": txn.ID,
		"gateway":        txn.GatewayName,
		"from":           string(expected),
		"to":             string(txn.Status),
		"code":           entry.Code,
	})
	return nil
}

// currentStatus reports what another writer left behind after a lost compare-and-set
func (s *Service) currentStatus(ctx context.Context, transactionID uint64) string {
	current, err := s.uow.GetTransactionRepository(ctx).GetByID(ctx, transactionID)
	if err != nil {
		return ""
	}
	return string(current.Status)
}

func (s *Service) rollback(txCtx context.Context, transactionID uint64) {
	if err := s.uow.Rollback(txCtx); err != nil {
		s.logger.Error("Failed to rollback transaction", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
	}
}

// fail moves the record to failed with a normalized log entry and returns the unified failure
func (s *Service) fail(
	ctx context.Context,
	txn *entity.Transaction,
	operation string,
	adapterErr error,
) error {
	from := txn.Status
	outcome := s.normalizer.NormalizeError(txn.GatewayName, adapterErr)
	s.logAdapterError(txn, operation, adapterErr, outcome)

	entry, err := txn.MarkAsFailed(outcome.Code, outcome.Message.EN, s.timeProvider)
	if err != nil {
		return err
	}
	if err := s.persistTransition(ctx, txn, operation, from, entry); err != nil {
		return err
	}

	s.metrics.FailureRecorded(txn.GatewayName, operation, string(outcome.Kind))
	return newGatewayFailure(txn, operation, outcome, adapterErr)
}

// recordTransportFault appends the fault to the log and leaves the status alone,
// so the same step can be retried once the bank is reachable again
func (s *Service) recordTransportFault(
	ctx context.Context,
	txn *entity.Transaction,
	operation string,
	fault error,
) error {
	outcome := s.normalizer.NormalizeError(txn.GatewayName, fault)
	s.logAdapterError(txn, operation, fault, outcome)

	entry := txn.RecordError(outcome.Code, outcome.Message.EN, s.timeProvider)
	if err := s.uow.GetTransactionRepository(ctx).AppendLog(ctx, txn.ID, entry); err != nil {
		s.logger.Error("Failed to append transport fault to transaction log", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
	}

	s.metrics.FailureRecorded(txn.GatewayName, operation, string(outcome.Kind))
	return fmt.Errorf("%s transaction %d: %w", operation, txn.ID, fault)
}

func (s *Service) logAdapterError(txn *entity.Transaction, operation string, err error, outcome entity.Outcome) {
	fields := errs.LogFieldsOf(err)
	fields["transaction_id"] = txn.ID
	fields["operation"] = operation
	fields["outcome_kind"] = string(outcome.Kind)
	fields["outcome_code"] = outcome.Code
	fields["retryable"] = outcome.Retryable

	if errs.IsTransportFault(err) {
		s.logger.Warn("Gateway call failed in transport", fields)
		return
	}
	s.logger.Error("Gateway rejected the operation", fields)
}

func newGatewayFailure(txn *entity.Transaction, operation string, outcome entity.Outcome, cause error) error {
	return &errs.GatewayFailure{
		TransactionID: txn.ID,
		Gateway:       txn.GatewayName,
		Operation:     operation,
		Code:          outcome.Code,
		Kind:          string(outcome.Kind),
		Messages:      outcome.Message.Map(),
		Retryable:     outcome.Retryable,
		Err:           cause,
	}
}

func (s *Service) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "payment."+operation, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
