// Package gateway holds the adapter registry and the settings providers
// shared by the bank adapters in its subpackages.
package gateway

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
)

// Registry is an in-memory set of adapters keyed by gateway name
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]gateway.Adapter
}

// Ensure Registry implements the gateway.Registry interface
var _ gateway.Registry = (*Registry)(nil)

// NewRegistry creates a registry holding the given adapters
func NewRegistry(adapters ...gateway.Adapter) *Registry {
	r := &Registry{adapters: make(map[string]gateway.Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds an adapter, replacing any adapter with the same name
func (r *Registry) Register(a gateway.Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[strings.ToLower(a.Name())] = a
}

// Get returns the adapter for name
func (r *Registry) Get(name string) (gateway.Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownGateway, name)
	}
	return a, nil
}

// Names returns the registered gateway names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CodeTables collects the code table of every adapter for the outcome normalizer
func (r *Registry) CodeTables() map[string]entity.CodeTable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make(map[string]entity.CodeTable, len(r.adapters))
	for name, a := range r.adapters {
		tables[name] = a.CodeTable()
	}
	return tables
}
