package suggest

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/hclsu/nextword/internal/log"
)

// fakeLister is an injectable ModelLister counting provider queries.
type fakeLister struct {
	models []ProviderModel
	err    error
	calls  atomic.Int64
}

func (f *fakeLister) ListModels(_ context.Context, _ string) ([]ProviderModel, error) {
	f.calls.Add(1)
	return f.models, f.err
}

// generating wraps names as provider models advertising generateContent.
func generating(names ...string) []ProviderModel {
	models := make([]ProviderModel, len(names))
	for i, n := range names {
		models[i] = ProviderModel{Name: n, Actions: []string{"generateContent", "countTokens"}}
	}
	return models
}

func TestCatalogFiltersByCapability(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{models: []ProviderModel{
		{Name: "gemini-2.0-flash", Actions: []string{"generateContent"}},
		{Name: "gemini-embedding-001", Actions: []string{"embedContent"}},
		{Name: "gemini-2.5-pro", Actions: []string{"countTokens", "generateContent"}},
	}}
	catalog := NewCatalog(lister, log.NewNop())

	got := catalog.Discover(context.Background(), "key")

	want := []string{"gemini-2.0-flash", "gemini-2.5-pro"}
	if !slices.Equal(Chain(got).Names(), want) {
		t.Errorf("Discover() = %v, want %v", Chain(got).Names(), want)
	}
}

func TestCatalogCachesPerCredential(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{models: generating("gemini-2.0-flash")}
	catalog := NewCatalog(lister, log.NewNop())
	ctx := context.Background()

	catalog.Discover(ctx, "key-a")
	catalog.Discover(ctx, "key-a")
	if got := lister.calls.Load(); got != 1 {
		t.Errorf("expected 1 provider query for a cached credential, got %d", got)
	}

	catalog.Discover(ctx, "key-b")
	if got := lister.calls.Load(); got != 2 {
		t.Errorf("expected a fresh query for a new credential, got %d total", got)
	}
}

func TestCatalogAbsorbsDiscoveryFailure(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{err: errors.New("provider unreachable")}
	catalog := NewCatalog(lister, log.NewNop())

	got := catalog.Discover(context.Background(), "key")
	if len(got) != 0 {
		t.Errorf("expected empty set on discovery failure, got %v", got)
	}

	// The empty result is cached too: failures show up downstream as
	// "no models", not as repeated provider hammering.
	catalog.Discover(context.Background(), "key")
	if calls := lister.calls.Load(); calls != 1 {
		t.Errorf("expected failed discovery to be cached, got %d queries", calls)
	}
}
