package suggest

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// DefaultPreferredModels is the fixed preference order tried when no model
// is pinned. Fast flash variants first; pro as the last resort.
var DefaultPreferredModels = []string{
	"gemini-2.0-flash-exp",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-2.5-pro",
}

// ChainBuilder turns the discovered model set into an ordered fallback
// chain. The result is deterministic given the same discovered set and
// preference list.
type ChainBuilder struct {
	catalog   *Catalog
	preferred []string
	logger    *slog.Logger
}

// NewChainBuilder creates a builder over the given catalog. An empty
// preferred list falls back to DefaultPreferredModels.
func NewChainBuilder(catalog *Catalog, preferred []string, logger *slog.Logger) *ChainBuilder {
	if len(preferred) == 0 {
		preferred = DefaultPreferredModels
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainBuilder{catalog: catalog, preferred: preferred, logger: logger}
}

// Build constructs the candidate chain for one request.
//
// With requested set, the chain is that single model — or a
// ModelUnavailableError naming the available set if the credential cannot
// use it. Without it, the preference list is intersected with the
// discovered set in preference order; an empty intersection falls back to
// the full discovered set in provider order, and an empty discovered set
// fails with ErrNoModelsAvailable.
func (b *ChainBuilder) Build(ctx context.Context, requested, credential string) (Chain, error) {
	discovered := b.catalog.Discover(ctx, credential)

	if requested != "" {
		idx := slices.IndexFunc(discovered, func(d ModelDescriptor) bool {
			return d.Name == requested
		})
		if idx < 0 {
			return nil, &ModelUnavailableError{
				Requested: requested,
				Available: Chain(discovered).Names(),
			}
		}
		return Chain{discovered[idx]}, nil
	}

	var chain Chain
	for _, name := range b.preferred {
		idx := slices.IndexFunc(discovered, func(d ModelDescriptor) bool {
			return d.Name == name
		})
		if idx >= 0 {
			chain = append(chain, discovered[idx])
		}
	}
	if len(chain) == 0 {
		// Nothing preferred is available; try everything discovered.
		chain = Chain(slices.Clone(discovered))
	}
	if len(chain) == 0 {
		return nil, ErrNoModelsAvailable
	}

	b.logger.Debug("fallback chain built", "models", strings.Join(chain.Names(), ", "))
	return chain, nil
}
