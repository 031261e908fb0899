package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
)

// GatewayRepository reads and seeds per-gateway settings stored in the database
type GatewayRepository interface {
	// GetByName returns the settings row for a gateway
	//
	// Possible errors:
	// - ErrUnknownGateway: If no row exists for name
	// - ErrDatabaseConnection: If database connection fails
	GetByName(ctx context.Context, name string) (*entity.GatewaySettings, error)

	// Seed inserts the settings unless a row for the gateway already exists
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Seed(ctx context.Context, settings *entity.GatewaySettings) error
}
