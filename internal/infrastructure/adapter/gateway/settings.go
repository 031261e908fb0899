package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
)

// StaticSettingsProvider serves settings loaded once from the configuration file
type StaticSettingsProvider struct {
	settings map[string]entity.GatewaySettings
}

// Ensure both providers implement the gateway.SettingsProvider interface
var (
	_ gateway.SettingsProvider = (*StaticSettingsProvider)(nil)
	_ gateway.SettingsProvider = (*DatabaseSettingsProvider)(nil)
)

// NewStaticSettingsProvider creates a provider over a fixed settings set
func NewStaticSettingsProvider(settings []entity.GatewaySettings) *StaticSettingsProvider {
	p := &StaticSettingsProvider{settings: make(map[string]entity.GatewaySettings, len(settings))}
	for _, s := range settings {
		p.settings[strings.ToLower(s.Name)] = s
	}
	return p
}

// Lookup returns the configured settings for name
func (p *StaticSettingsProvider) Lookup(_ context.Context, name string) (entity.GatewaySettings, error) {
	s, ok := p.settings[strings.ToLower(name)]
	if !ok {
		return entity.GatewaySettings{}, fmt.Errorf("%w: no settings for %q", errs.ErrUnknownGateway, name)
	}
	return s, nil
}

// All returns every configured gateway's settings
func (p *StaticSettingsProvider) All() []entity.GatewaySettings {
	all := make([]entity.GatewaySettings, 0, len(p.settings))
	for _, s := range p.settings {
		all = append(all, s)
	}
	return all
}

// DatabaseSettingsProvider reads the gateways table and falls back to
// another provider for gateways that have no row
type DatabaseSettingsProvider struct {
	repo     persistence.GatewayRepository
	fallback gateway.SettingsProvider
	logger   core.Logger
}

// NewDatabaseSettingsProvider creates a provider backed by the gateways table
func NewDatabaseSettingsProvider(repo persistence.GatewayRepository, fallback gateway.SettingsProvider, logger core.Logger) *DatabaseSettingsProvider {
	return &DatabaseSettingsProvider{repo: repo, fallback: fallback, logger: logger}
}

// Lookup returns the stored settings for name
func (p *DatabaseSettingsProvider) Lookup(ctx context.Context, name string) (entity.GatewaySettings, error) {
	s, err := p.repo.GetByName(ctx, strings.ToLower(name))
	if err == nil {
		return *s, nil
	}
	if !errors.Is(err, errs.ErrUnknownGateway) || p.fallback == nil {
		return entity.GatewaySettings{}, err
	}

	p.logger.Debug("Gateway not stored, using configured settings", map[string]any{
		"gateway": name,
	})
	return p.fallback.Lookup(ctx, name)
}
