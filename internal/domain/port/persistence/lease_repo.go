package persistence

import (
	"context"
	"time"
)

// LeaseRepository hands out named, expiring locks so that only one
// instance runs a maintenance job at a time
type LeaseRepository interface {
	// AcquireLock takes the lease for owner until duration elapses.
	// An expired lease held by someone else is taken over.
	//
	// Possible errors:
	// - ErrLocked: If another owner holds an unexpired lease
	// - ErrDatabaseConnection: If the backing store fails
	AcquireLock(ctx context.Context, name, owner string, duration time.Duration) error

	// ReleaseLock drops the lease if owner still holds it
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the backing store fails
	ReleaseLock(ctx context.Context, name, owner string) error
}
