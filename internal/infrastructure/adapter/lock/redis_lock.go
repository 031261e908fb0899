package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
)

// KeyPrefix namespaces lease keys in a shared redis
const KeyPrefix = "payment-gateway:lease:"

// renewScript extends the lease only if owner still holds it
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// releaseScript deletes the lease only if owner still holds it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockRepository implements leases as redis keys whose value is the owner
type RedisLockRepository struct {
	client redis.UniversalClient
	logger coreport.Logger
}

// Ensure RedisLockRepository implements the persistence.LeaseRepository interface
var _ persistence.LeaseRepository = (*RedisLockRepository)(nil)

// NewRedisLockRepository creates a lease repository on top of a redis client
func NewRedisLockRepository(client redis.UniversalClient, logger coreport.Logger) *RedisLockRepository {
	return &RedisLockRepository{client: client, logger: logger}
}

// NewClient opens a redis client and checks it answers
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return client, nil
}

// AcquireLock sets the key if absent, or renews it when owner already holds it
func (r *RedisLockRepository) AcquireLock(ctx context.Context, name, owner string, duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("%w: lease duration must be positive", errs.ErrInvalidRequest)
	}
	key := KeyPrefix + name

	ok, err := r.client.SetNX(ctx, key, owner, duration).Result()
	if err != nil {
		return r.lockError("acquire", name, err)
	}
	if ok {
		r.logger.Debug("Lease acquired", map[string]any{"lease": name, "owner": owner})
		return nil
	}

	renewed, err := renewScript.Run(ctx, r.client, []string{key}, owner, duration.Milliseconds()).Int()
	if err != nil {
		return r.lockError("renew", name, err)
	}
	if renewed == 0 {
		r.logger.Debug("Lease held by another owner", map[string]any{"lease": name})
		return fmt.Errorf("%w: %s", errs.ErrLocked, name)
	}

	r.logger.Debug("Lease renewed", map[string]any{"lease": name, "owner": owner})
	return nil
}

// ReleaseLock deletes the key if owner still holds it
func (r *RedisLockRepository) ReleaseLock(ctx context.Context, name, owner string) error {
	err := releaseScript.Run(ctx, r.client, []string{KeyPrefix + name}, owner).Err()
	if err == nil || errors.Is(err, redis.Nil) {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logger.Warn("Context ended while releasing lease, it will expire on its own", map[string]any{
			"lease": name,
			"error": err.Error(),
		})
		return nil
	}
	return r.lockError("release", name, err)
}

func (r *RedisLockRepository) lockError(op, name string, err error) error {
	r.logger.Error("Lease operation failed", map[string]any{
		"operation": op,
		"lease":     name,
		"backend":   "redis",
		"error":     err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}
