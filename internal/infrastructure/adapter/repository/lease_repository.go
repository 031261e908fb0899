package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/model"
)

// LeaseRepository implements named leases on the leases table.
// It works on both postgres and mysql without dialect-specific SQL.
type LeaseRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// Ensure LeaseRepository implements the persistence.LeaseRepository interface
var _ persistence.LeaseRepository = (*LeaseRepository)(nil)

// NewLeaseRepository creates a new LeaseRepository instance
func NewLeaseRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *LeaseRepository {
	return &LeaseRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AcquireLock inserts the lease, or takes it over when it expired or is already ours
func (r *LeaseRepository) AcquireLock(ctx context.Context, name, owner string, duration time.Duration) error {
	now := r.timeProvider.Now()
	lease := model.Lease{
		Name:      name,
		Owner:     owner,
		LockedAt:  now,
		ExpiresAt: now.Add(duration),
	}

	inserted := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&lease)
	if inserted.Error != nil {
		return r.lockError("acquire", name, inserted.Error)
	}
	if inserted.RowsAffected == 1 {
		r.logger.Debug("Lease acquired", map[string]any{"lease": name, "owner": owner})
		return nil
	}

	taken := r.db.WithContext(ctx).Model(&model.Lease{}).
		Where("name = ? AND (expires_at <= ? OR owner = ?)", name, now, owner).
		Updates(map[string]any{
			"owner":      owner,
			"locked_at":  now,
			"expires_at": lease.ExpiresAt,
		})
	if taken.Error != nil {
		return r.lockError("acquire", name, taken.Error)
	}
	if taken.RowsAffected == 0 {
		r.logger.Debug("Lease held by another owner", map[string]any{"lease": name})
		return fmt.Errorf("%w: %s", errs.ErrLocked, name)
	}

	r.logger.Debug("Lease taken over", map[string]any{"lease": name, "owner": owner})
	return nil
}

// ReleaseLock deletes the lease if owner still holds it
func (r *LeaseRepository) ReleaseLock(ctx context.Context, name, owner string) error {
	result := r.db.WithContext(ctx).
		Where("name = ? AND owner = ?", name, owner).
		Delete(&model.Lease{})

	if result.Error != nil {
		if isContextError(result.Error) {
			r.logger.Warn("Context ended while releasing lease, it will expire on its own", map[string]any{
				"lease": name,
				"error": result.Error.Error(),
			})
			return nil
		}
		return r.lockError("release", name, result.Error)
	}
	return nil
}

// CleanupExpired removes every expired lease
func (r *LeaseRepository) CleanupExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", r.timeProvider.Now()).Delete(&model.Lease{})
	if result.Error != nil {
		return 0, r.lockError("cleanup", "*", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *LeaseRepository) lockError(op, name string, err error) error {
	r.logger.Error("Lease operation failed", map[string]any{
		"operation": op,
		"lease":     name,
		"error":     err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}
