package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/model"
)

// GatewayRepository reads gateway settings from the gateways table
type GatewayRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// Ensure GatewayRepository implements the persistence.GatewayRepository interface
var _ persistence.GatewayRepository = (*GatewayRepository)(nil)

// NewGatewayRepository creates a new GatewayRepository instance
func NewGatewayRepository(db *gorm.DB, logger coreport.Logger) *GatewayRepository {
	return &GatewayRepository{db: db, logger: logger}
}

// GetByName returns the settings stored for name
func (r *GatewayRepository) GetByName(ctx context.Context, name string) (*entity.GatewaySettings, error) {
	var m model.Gateway
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownGateway, name)
	}
	if err != nil {
		r.logger.Error("Failed to load gateway settings", map[string]any{
			"gateway": name,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return gatewayToEntity(&m), nil
}

// Seed inserts the settings unless the gateway already has a row
func (r *GatewayRepository) Seed(ctx context.Context, settings *entity.GatewaySettings) error {
	info := make(datatypes.JSONMap, len(settings.Credentials))
	for k, v := range settings.Credentials {
		info[k] = v
	}

	m := model.Gateway{
		Name:           settings.Name,
		ConnectionInfo: info,
		CallbackURL:    settings.CallbackBaseURL,
		Enabled:        settings.Enabled,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to seed gateway settings", map[string]any{
			"gateway": settings.Name,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Gateway settings seeded", map[string]any{"gateway": settings.Name})
	}
	return nil
}

func gatewayToEntity(m *model.Gateway) *entity.GatewaySettings {
	creds := make(entity.Credentials, len(m.ConnectionInfo))
	for k, v := range m.ConnectionInfo {
		switch val := v.(type) {
		case string:
			creds[k] = val
		case float64:
			creds[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
		default:
			creds[k] = fmt.Sprint(val)
		}
	}
	return &entity.GatewaySettings{
		Name:            m.Name,
		Enabled:         m.Enabled,
		Credentials:     creds,
		CallbackBaseURL: m.CallbackURL,
	}
}
