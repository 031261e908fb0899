package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/model"
)

func TestTransactionMapping(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	txn := &entity.Transaction{
		ID:           42,
		GatewayName:  entity.GatewayMellat,
		Amount:       1000,
		RefID:        "ref",
		TrackingCode: "trace",
		CardNumber:   "6037****",
		Status:       entity.StatusVerified,
		CallbackURL:  "https://cb?transaction_id=42",
		CreatedAt:    created,
		UpdatedAt:    created.Add(time.Minute),
		Log: []entity.LogEntry{
			{Code: entity.LogCodeCreated, Message: "transaction created", Status: entity.StatusPending, Timestamp: created},
			{Code: "0", Message: "verified", Status: entity.StatusVerified, Timestamp: created.Add(time.Minute)},
		},
	}

	m := entityToModel(txn)
	require.Len(t, m.Logs, 2)
	assert.Equal(t, uint64(42), m.Logs[1].TransactionID)
	assert.Equal(t, "verified", m.Status)

	back := modelToEntity(&m)
	assert.Equal(t, txn, back)
}

func TestGatewayToEntity(t *testing.T) {
	m := &model.Gateway{
		Name: "mellat",
		ConnectionInfo: datatypes.JSONMap{
			"terminalId": float64(1234567),
			"username":   "shop",
			"password":   nil,
		},
		CallbackURL: "https://shop.example/callback",
		Enabled:     true,
	}

	s := gatewayToEntity(m)

	assert.Equal(t, "1234567", s.Credentials.Get("terminalId"))
	assert.Equal(t, "shop", s.Credentials.Get("username"))
	assert.Empty(t, s.Credentials.Get("password"))
	assert.Equal(t, "https://shop.example/callback", s.CallbackBaseURL)
	assert.True(t, s.Enabled)
}
