package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	gatewaymocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/gateway"
	persistencemocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/persistence"
)

func namedAdapter(t *testing.T, name string) *gatewaymocks.MockAdapter {
	a := gatewaymocks.NewMockAdapter(t)
	a.On("Name").Return(name).Maybe()
	a.On("CodeTable").Return(entity.CodeTable{"0": {Kind: entity.OutcomeSuccess}}).Maybe()
	return a
}

func TestRegistry(t *testing.T) {
	sadad := namedAdapter(t, "sadad")
	mellat := namedAdapter(t, "Mellat")
	registry := NewRegistry(sadad, mellat)

	got, err := registry.Get(" MELLAT ")
	require.NoError(t, err)
	assert.Same(t, mellat, got)

	_, err = registry.Get("parsian")
	assert.ErrorIs(t, err, errs.ErrUnknownGateway)

	assert.Equal(t, []string{"mellat", "sadad"}, registry.Names())
	assert.Len(t, registry.CodeTables(), 2)
}

func TestStaticSettingsProvider(t *testing.T) {
	provider := NewStaticSettingsProvider([]entity.GatewaySettings{
		{Name: "Mellat", Enabled: true, Credentials: entity.Credentials{"terminalId": "1"}},
	})

	s, err := provider.Lookup(context.Background(), "mellat")
	require.NoError(t, err)
	assert.Equal(t, "1", s.Credentials.Get("terminal_id"))

	_, err = provider.Lookup(context.Background(), "sadad")
	assert.ErrorIs(t, err, errs.ErrUnknownGateway)
	assert.Len(t, provider.All(), 1)
}

func TestDatabaseSettingsProvider(t *testing.T) {
	static := NewStaticSettingsProvider([]entity.GatewaySettings{
		{Name: "sadad", Enabled: true},
	})

	testCases := []struct {
		name        string
		gateway     string
		setupMocks  func(repo *persistencemocks.MockGatewayRepository)
		expected    entity.GatewaySettings
		expectedErr error
	}{
		{
			name:    "Stored row wins",
			gateway: "Mellat",
			setupMocks: func(repo *persistencemocks.MockGatewayRepository) {
				repo.On("GetByName", mock.Anything, "mellat").
					Return(&entity.GatewaySettings{Name: "mellat", Enabled: false}, nil).Once()
			},
			expected: entity.GatewaySettings{Name: "mellat", Enabled: false},
		},
		{
			name:    "Missing row falls back to configuration",
			gateway: "sadad",
			setupMocks: func(repo *persistencemocks.MockGatewayRepository) {
				repo.On("GetByName", mock.Anything, "sadad").Return(nil, errs.ErrUnknownGateway).Once()
			},
			expected: entity.GatewaySettings{Name: "sadad", Enabled: true},
		},
		{
			name:    "Database errors are returned",
			gateway: "sadad",
			setupMocks: func(repo *persistencemocks.MockGatewayRepository) {
				repo.On("GetByName", mock.Anything, "sadad").Return(nil, errs.ErrDatabaseConnection).Once()
			},
			expectedErr: errs.ErrDatabaseConnection,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := persistencemocks.NewMockGatewayRepository(t)
			tc.setupMocks(repo)

			provider := NewDatabaseSettingsProvider(repo, static, logger.NewNoopLogger())
			s, err := provider.Lookup(context.Background(), tc.gateway)

			if tc.expectedErr != nil {
				assert.True(t, errors.Is(err, tc.expectedErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, s)
		})
	}
}
