package suggest

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// generateAction is the provider capability a model must advertise to be
// usable for suggestion generation.
const generateAction = "generateContent"

// ProviderModel is one entry from the provider's list-models response:
// the short identifier plus the generation capabilities it advertises.
type ProviderModel struct {
	Name    string
	Actions []string
}

// ModelLister queries a provider for the models a credential can access.
// The production implementation is GeminiLister; tests inject fakes.
type ModelLister interface {
	ListModels(ctx context.Context, credential string) ([]ProviderModel, error)
}

// Catalog discovers and caches, per credential, the models that support
// content generation.
//
// The cache is write-once per key and kept for the process lifetime (no
// eviction). Discovery runs outside the lock, so two concurrent calls for
// the same uncached credential may both query the provider; the writes are
// idempotent and the first stored value wins.
//
// Catalog is safe for concurrent use by multiple goroutines.
type Catalog struct {
	lister ModelLister
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string][]ModelDescriptor
}

// NewCatalog creates a catalog backed by the given lister.
func NewCatalog(lister ModelLister, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		lister: lister,
		logger: logger,
		cache:  make(map[string][]ModelDescriptor),
	}
}

// Discover returns the models supporting content generation for the
// credential, in provider order. The first call per credential queries the
// provider; later calls return the cached list.
//
// Discovery failures are absorbed: the result is an empty list, never an
// error, so they surface downstream as "no models available" instead of a
// separate failure path.
func (c *Catalog) Discover(ctx context.Context, credential string) []ModelDescriptor {
	c.mu.Lock()
	if cached, ok := c.cache[credential]; ok {
		c.mu.Unlock()
		return slices.Clone(cached)
	}
	c.mu.Unlock()

	var descriptors []ModelDescriptor
	models, err := c.lister.ListModels(ctx, credential)
	if err != nil {
		c.logger.Warn("model discovery failed", "error", err)
	} else {
		for _, m := range models {
			if !slices.Contains(m.Actions, generateAction) {
				continue
			}
			descriptors = append(descriptors, ModelDescriptor{Name: m.Name})
		}
	}

	c.mu.Lock()
	if existing, ok := c.cache[credential]; ok {
		// Lost the discovery race; keep the first stored value.
		descriptors = existing
	} else {
		c.cache[credential] = descriptors
	}
	c.mu.Unlock()

	c.logger.Info("models discovered", "count", len(descriptors))
	return slices.Clone(descriptors)
}
