package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid transaction creation", func(t *testing.T) {
		txn, err := NewTransaction(1001, GatewayMellat, 50000, "https://shop.example/cb?transaction_id=1001", mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1001), txn.ID)
		assert.Equal(t, GatewayMellat, txn.GatewayName)
		assert.Equal(t, int64(50000), txn.Amount)
		assert.Equal(t, StatusPending, txn.Status)
		assert.Empty(t, txn.RefID)
		assert.Equal(t, fixedTime, txn.CreatedAt)
		require.Len(t, txn.Log, 1)
		assert.Equal(t, LogCodeCreated, txn.Log[0].Code)
	})

	testCases := []struct {
		name        string
		id          uint64
		gateway     string
		amount      int64
		callbackURL string
		expectedErr error
	}{
		{"Zero ID", 0, GatewayMellat, 1000, "https://cb", errs.ErrInvalidTransactionID},
		{"Empty gateway", 1, "", 1000, "https://cb", errs.ErrUnknownGateway},
		{"Zero amount", 1, GatewaySadad, 0, "https://cb", errs.ErrInvalidAmount},
		{"Negative amount", 1, GatewaySadad, -5, "https://cb", errs.ErrInvalidAmount},
		{"Empty callback", 1, GatewaySadad, 1000, "", errs.ErrInvalidCallbackURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txn, err := NewTransaction(tc.id, tc.gateway, tc.amount, tc.callbackURL, mockTime)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, txn)
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	testCases := []struct {
		from     Status
		to       Status
		expected bool
	}{
		{StatusPending, StatusRefIDObtained, true},
		{StatusPending, StatusCallbackReceived, false},
		{StatusPending, StatusFailed, true},
		{StatusRefIDObtained, StatusCallbackReceived, true},
		{StatusRefIDObtained, StatusVerified, false},
		{StatusCallbackReceived, StatusVerified, true},
		{StatusCallbackReceived, StatusFailed, true},
		{StatusVerified, StatusSettled, true},
		{StatusVerified, StatusFailed, true},
		{StatusSettled, StatusFailed, false},
		{StatusFailed, StatusPending, false},
		{StatusFailed, StatusFailed, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.from.CanTransitionTo(tc.to))
		})
	}

	assert.True(t, StatusSettled.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusVerified.IsTerminal())
	assert.False(t, Status("bogus").IsValid())
}

func TestTransactionLifecycle(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Happy path", func(t *testing.T) {
		txn, err := NewTransaction(7, GatewayMellat, 1000, "https://cb", mockTime)
		require.NoError(t, err)

		_, err = txn.MarkRefIDObtained("AF82041a2Bf6989c7fF9", mockTime)
		require.NoError(t, err)
		assert.Equal(t, "AF82041a2Bf6989c7fF9", txn.RefID)

		_, err = txn.MarkCallbackReceived("12345", "603799******1234", mockTime)
		require.NoError(t, err)

		entry, err := txn.MarkVerified("0", "verified", "99999", "000000******0000", mockTime)
		require.NoError(t, err)
		assert.Equal(t, StatusVerified, entry.Status)
		assert.Equal(t, "12345", txn.TrackingCode, "tracking code is write-once")
		assert.Equal(t, "603799******1234", txn.CardNumber, "card number is write-once")
		assert.True(t, txn.IsSuccessful())

		_, err = txn.MarkSettled("0", "settled", mockTime)
		require.NoError(t, err)
		assert.Equal(t, StatusSettled, txn.Status)
		assert.Len(t, txn.Log, 5)
	})

	t.Run("Reference cannot be overwritten", func(t *testing.T) {
		txn, err := NewTransaction(8, GatewayMellat, 1000, "https://cb", mockTime)
		require.NoError(t, err)

		_, err = txn.MarkRefIDObtained("", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRefID)

		_, err = txn.MarkRefIDObtained("first", mockTime)
		require.NoError(t, err)
		_, err = txn.MarkRefIDObtained("second", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRefID)
		assert.Equal(t, "first", txn.RefID)
	})

	t.Run("Failed is terminal", func(t *testing.T) {
		txn, err := NewTransaction(9, GatewaySadad, 1000, "https://cb", mockTime)
		require.NoError(t, err)

		_, err = txn.MarkAsFailed("1001", "rejected", mockTime)
		require.NoError(t, err)

		_, err = txn.MarkRefIDObtained("ref", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		_, err = txn.MarkAsFailed("1001", "again", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, StatusFailed, txn.Status)
	})

	t.Run("Recording an error keeps the status", func(t *testing.T) {
		txn, err := NewTransaction(10, GatewayMellat, 1000, "https://cb", mockTime)
		require.NoError(t, err)

		entry := txn.RecordError("SoapFault", "timeout", mockTime)

		assert.Equal(t, StatusPending, entry.Status)
		assert.Equal(t, StatusPending, txn.Status)
		last, ok := txn.LastEntry()
		require.True(t, ok)
		assert.Equal(t, "SoapFault", last.Code)
	})
}
