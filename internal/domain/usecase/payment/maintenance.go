package payment

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
)

// Lease names held while a sweep runs
const (
	VerifyRetryLock = "payment:verify-retry"
	SettleRetryLock = "payment:settle-retry"
	ExpiryLock      = "payment:expire-stale"
)

// expirable lists the statuses a record can be stranded in before the customer returns.
// pending is left behind when the reference id could not be stored after initiation.
var expirable = []entity.Status{entity.StatusPending, entity.StatusRefIDObtained}

// MaintenanceConfig controls the background sweeps
type MaintenanceConfig struct {
	VerifyRetryAfter time.Duration
	SettleRetryAfter time.Duration
	ExpireAfter      time.Duration
	BatchSize        int
	LeaseDuration    time.Duration
	// Owner identifies this instance in lease records
	Owner string
}

// MaintenanceService recovers records a customer or bank left behind
type MaintenanceService struct {
	payments     *Service
	leases       persistence.LeaseRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       MaintenanceConfig
}

// Ensure MaintenanceService implements the MaintenanceUseCase interface
var _ usecase.MaintenanceUseCase = (*MaintenanceService)(nil)

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	payments *Service,
	leases persistence.LeaseRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config MaintenanceConfig,
) *MaintenanceService {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.LeaseDuration <= 0 {
		config.LeaseDuration = time.Minute
	}
	return &MaintenanceService{
		payments:     payments,
		leases:       leases,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
	}
}

// RetryStuckVerifications repeats verification for records left callback_received
// longer than VerifyRetryAfter, usually after the bank timed out on the first try.
// A record that verifies is settled in the same pass.
func (m *MaintenanceService) RetryStuckVerifications(ctx context.Context) (int, error) {
	completed := 0
	err := m.withLease(ctx, VerifyRetryLock, func(ctx context.Context) error {
		cutoff := m.timeProvider.Now().Add(-m.config.VerifyRetryAfter)
		txns, err := m.payments.uow.GetTransactionRepository(ctx).
			ListByStatus(ctx, entity.StatusCallbackReceived, cutoff, m.config.BatchSize)
		if err != nil {
			return err
		}

		for _, txn := range txns {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := m.payments.verify(ctx, txn); err != nil {
				m.logger.Warn("Verification retry failed", map[string]any{
					"transaction_id": txn.ID,
					"gateway":        txn.GatewayName,
					"retryable":      errs.IsRetryable(err),
					"error":          err.Error(),
				})
				continue
			}
			completed++

			// a settle failure here is picked up by the settlement sweep
			if _, err := m.payments.settle(ctx, txn); err != nil {
				m.logger.Warn("Settlement after verification retry failed", map[string]any{
					"transaction_id": txn.ID,
					"gateway":        txn.GatewayName,
					"error":          err.Error(),
				})
			}
		}
		return nil
	})

	if completed > 0 {
		m.logger.Info("Verification retry sweep finished", map[string]any{"verified": completed})
	}
	return completed, err
}

// RetryStuckSettlements retries settle on records left verified longer than SettleRetryAfter
func (m *MaintenanceService) RetryStuckSettlements(ctx context.Context) (int, error) {
	settled := 0
	err := m.withLease(ctx, SettleRetryLock, func(ctx context.Context) error {
		cutoff := m.timeProvider.Now().Add(-m.config.SettleRetryAfter)
		txns, err := m.payments.uow.GetTransactionRepository(ctx).
			ListByStatus(ctx, entity.StatusVerified, cutoff, m.config.BatchSize)
		if err != nil {
			return err
		}

		for _, txn := range txns {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := m.payments.settle(ctx, txn); err != nil {
				m.logger.Warn("Settlement retry failed", map[string]any{
					"transaction_id": txn.ID,
					"gateway":        txn.GatewayName,
					"retryable":      errs.IsRetryable(err),
					"error":          err.Error(),
				})
				continue
			}
			settled++
		}
		return nil
	})

	if settled > 0 {
		m.logger.Info("Settlement retry sweep finished", map[string]any{"settled": settled})
	}
	return settled, err
}

// ExpireStale fails records whose customer never returned from the bank within ExpireAfter
func (m *MaintenanceService) ExpireStale(ctx context.Context) (int, error) {
	expired := 0
	err := m.withLease(ctx, ExpiryLock, func(ctx context.Context) error {
		cutoff := m.timeProvider.Now().Add(-m.config.ExpireAfter)
		for _, status := range expirable {
			n, err := m.expire(ctx, status, cutoff)
			expired += n
			if err != nil {
				return err
			}
		}
		return nil
	})

	if expired > 0 {
		m.logger.Info("Stale transaction sweep finished", map[string]any{"expired": expired})
	}
	return expired, err
}

func (m *MaintenanceService) expire(ctx context.Context, status entity.Status, cutoff time.Time) (int, error) {
	txns, err := m.payments.uow.GetTransactionRepository(ctx).
		ListByStatus(ctx, status, cutoff, m.config.BatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, txn := range txns {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}

		entry, err := txn.MarkAsFailed(entity.LogCodeExpired, entity.ExpiredMessage.EN, m.timeProvider)
		if err != nil {
			continue
		}
		if err := m.payments.persistTransition(ctx, txn, OpExpire, status, entry); err != nil {
			// the customer came back while we were sweeping
			if errs.IsStatePreconditionError(err) {
				continue
			}
			return expired, err
		}
		m.payments.metrics.FailureRecorded(txn.GatewayName, OpExpire, string(entity.OutcomeExpired))
		expired++
	}
	return expired, nil
}

// withLease runs fn only if this instance holds the named lease. A lease held
// elsewhere is not an error; the sweep simply does not run here.
func (m *MaintenanceService) withLease(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if err := m.leases.AcquireLock(ctx, name, m.config.Owner, m.config.LeaseDuration); err != nil {
		if errors.Is(err, errs.ErrLocked) {
			m.logger.Debug("Sweep skipped, lease held by another instance", map[string]any{
				"lease": name,
			})
			return nil
		}
		return err
	}

	defer func() {
		// release with a fresh context so a cancelled sweep still frees the lease
		releaseCtx, cancel := m.timeProvider.WithTimeout(context.Background(), coreport.Duration(5*time.Second))
		defer cancel()
		if err := m.leases.ReleaseLock(releaseCtx, name, m.config.Owner); err != nil {
			m.logger.Warn("Failed to release lease", map[string]any{
				"lease": name,
				"error": err.Error(),
			})
		}
	}()

	return fn(ctx)
}
