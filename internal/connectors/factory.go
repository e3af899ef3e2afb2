package connectors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory creates connectors from source configuration.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.ConnectorBuilder
}

// NewFactory creates an empty connector factory.
// Builders are registered by the composition root.
func NewFactory() *Factory {
	return &Factory{
		builders: make(map[string]driven.ConnectorBuilder),
	}
}

// Register adds a connector builder for the given type.
func (f *Factory) Register(connectorType string, builder driven.ConnectorBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[connectorType] = builder
}

// Create returns a Connector for the given source.
func (f *Factory) Create(_ context.Context, source domain.Source) (driven.Connector, error) {
	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, source.Type)
	}
	return builder(source)
}

// SupportedTypes returns all registered connector types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
