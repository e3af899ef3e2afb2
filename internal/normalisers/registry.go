package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the best matching normaliser.
// Selection priority: connector-specific > MIME-specific > fallback,
// then by each normaliser's Priority value.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	if normaliser == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise transforms a raw document using the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	normaliser := r.selectNormaliser(raw)
	if normaliser == nil {
		return nil, fmt.Errorf("%w: no normaliser for MIME type %q", domain.ErrUnsupportedFormat, raw.MIMEType)
	}

	return normaliser.Normalise(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be normalised.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, n := range r.normalisers {
		for _, mime := range n.SupportedMIMETypes() {
			if !seen[mime] {
				seen[mime] = true
				types = append(types, mime)
			}
		}
	}
	sort.Strings(types)
	return types
}

// selectNormaliser picks the highest-priority normaliser matching the
// document. Connector-specific normalisers match on the connector_type
// metadata key set by connectors.
func (r *Registry) selectNormaliser(raw *domain.RawDocument) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connectorType, _ := raw.Metadata["connector_type"].(string)

	for _, n := range r.normalisers {
		if !matchesConnector(n, connectorType) {
			continue
		}
		if matchesMIME(n, raw.MIMEType) {
			return n
		}
	}
	return nil
}

func matchesConnector(n driven.Normaliser, connectorType string) bool {
	supported := n.SupportedConnectorTypes()
	if len(supported) == 0 {
		return true // all connectors
	}
	for _, t := range supported {
		if t == connectorType {
			return true
		}
	}
	return false
}

func matchesMIME(n driven.Normaliser, mimeType string) bool {
	for _, t := range n.SupportedMIMETypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
