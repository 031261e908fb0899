package database

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIntegration(t *testing.T) *TestDBManager {
	t.Helper()

	m := NewTestDBManager(t, logger.NewNoopLogger())
	m.Connect(t)
	m.SetupTestDB(t)
	return m
}

func TestTransactionLifecycleAgainstDatabase(t *testing.T) {
	m := setupIntegration(t)
	ctx := context.Background()
	uow := m.Manager.CreateUnitOfWork()
	repo := uow.GetTransactionRepository(ctx)

	txn, err := entity.NewTransaction(4242, entity.GatewayMellat, 150000, "https://shop.example/cb?transaction_id=4242", m.TimeProvider)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, txn))

	err = repo.Create(ctx, txn)
	assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)

	entry, err := txn.MarkRefIDObtained("AF82041a2Bf6989c7fF9", m.TimeProvider)
	require.NoError(t, err)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	txRepo := uow.GetTransactionRepository(txCtx)
	require.NoError(t, txRepo.UpdateStatus(txCtx, txn, entity.StatusPending))
	require.NoError(t, txRepo.AppendLog(txCtx, txn.ID, entry))
	require.NoError(t, uow.Commit(txCtx))

	t.Run("Stale compare-and-set is rejected", func(t *testing.T) {
		stale := *txn
		stale.Status = entity.StatusFailed
		err := repo.UpdateStatus(ctx, &stale, entity.StatusPending)
		assert.ErrorIs(t, err, errs.ErrStatePrecondition)
	})

	t.Run("Missing record", func(t *testing.T) {
		ghost := *txn
		ghost.ID = 9999
		err := repo.UpdateStatus(ctx, &ghost, entity.StatusPending)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	loaded, err := repo.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRefIDObtained, loaded.Status)
	assert.Equal(t, "AF82041a2Bf6989c7fF9", loaded.RefID)
	require.Len(t, loaded.Log, 2)
	assert.Equal(t, entity.LogCodeCreated, loaded.Log[0].Code)

	stuck, err := repo.ListByStatus(ctx, entity.StatusRefIDObtained, m.TimeProvider.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stuck, 1)
	assert.Equal(t, txn.ID, stuck[0].ID)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	m := setupIntegration(t)
	ctx := context.Background()
	uow := m.Manager.CreateUnitOfWork()

	txn, err := entity.NewTransaction(77, entity.GatewaySadad, 1000, "https://cb", m.TimeProvider)
	require.NoError(t, err)
	require.NoError(t, uow.GetTransactionRepository(ctx).Create(ctx, txn))

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	entry, err := txn.MarkAsFailed("1001", "rejected", m.TimeProvider)
	require.NoError(t, err)
	require.NoError(t, uow.GetTransactionRepository(txCtx).UpdateStatus(txCtx, txn, entity.StatusPending))
	require.NoError(t, uow.GetTransactionRepository(txCtx).AppendLog(txCtx, txn.ID, entry))
	require.NoError(t, uow.Rollback(txCtx))

	loaded, err := uow.GetTransactionRepository(ctx).GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, loaded.Status)
	assert.Len(t, loaded.Log, 1)
}

func TestLeaseAgainstDatabase(t *testing.T) {
	m := setupIntegration(t)
	ctx := context.Background()
	leases := repository.NewLeaseRepository(m.Manager.DB(), m.TimeProvider, m.Logger)

	require.NoError(t, leases.AcquireLock(ctx, "settle-retry", "node-a", time.Minute))
	assert.ErrorIs(t, leases.AcquireLock(ctx, "settle-retry", "node-b", time.Minute), errs.ErrLocked)
	assert.NoError(t, leases.AcquireLock(ctx, "settle-retry", "node-a", time.Minute), "owner may renew")

	require.NoError(t, leases.ReleaseLock(ctx, "settle-retry", "node-a"))
	assert.NoError(t, leases.AcquireLock(ctx, "settle-retry", "node-b", -time.Second))
	assert.NoError(t, leases.AcquireLock(ctx, "settle-retry", "node-a", time.Minute), "expired lease is taken over")
}

func TestGatewaySeedAgainstDatabase(t *testing.T) {
	m := setupIntegration(t)
	ctx := context.Background()

	seed := entity.GatewaySettings{
		Name:            entity.GatewayMellat,
		Enabled:         true,
		Credentials:     entity.Credentials{"terminalId": "123", "username": "shop", "password": "secret"},
		CallbackBaseURL: "https://shop.example/cb",
	}
	require.NoError(t, m.Manager.Migrate(ctx, []entity.GatewaySettings{seed}))

	seed.CallbackBaseURL = "https://changed.example/cb"
	require.NoError(t, m.Manager.Migrate(ctx, []entity.GatewaySettings{seed}))

	stored, err := repository.NewGatewayRepository(m.Manager.DB(), m.Logger).GetByName(ctx, entity.GatewayMellat)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/cb", stored.CallbackBaseURL, "seeding never overwrites")
	assert.Equal(t, "123", stored.Credentials.Get("terminalId"))
	assert.True(t, stored.Enabled)

	require.NoError(t, m.Manager.Ping(ctx))
}
