package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"
)

// Bounds for the requested candidate count.
const (
	MinCount     = 1
	MaxCount     = 10
	DefaultCount = 5
)

// SourceFactory builds the Source for one chain entry. The default
// factory builds Genkit pipelines; tests inject fakes.
type SourceFactory func(model ModelDescriptor) (Source, error)

// Config contains all required parameters for the suggestion Service.
type Config struct {
	Genkit     *genkit.Genkit // Required unless Sources is set
	Catalog    *Catalog       // Required
	Logger     *slog.Logger   // Required
	Credential string         // Required: provider API key, also the catalog cache key

	// Configuration values
	Mode            Mode     // ModeWords (default) or ModeTree
	DefaultModel    string   // Pin applied when the request names no model (empty = fallback chain)
	PreferredModels []string // Fallback preference order (empty = defaults)
	DefaultCount    int      // Candidate count when the request leaves it zero
	Temperature     float32  // Sampling temperature (zero-value uses default)
	MaxDepth        int      // Tree depth bound (zero-value uses default)

	// RateLimiter optionally throttles model attempts across requests.
	RateLimiter *rate.Limiter

	// Sources overrides pipeline construction. Intended for tests.
	Sources SourceFactory
}

// validate checks that all required parameters are present.
func (cfg Config) validate() error {
	if cfg.Catalog == nil {
		return errors.New("catalog is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Credential == "" {
		return errors.New("credential is required")
	}
	if cfg.Genkit == nil && cfg.Sources == nil {
		return errors.New("genkit instance is required")
	}
	switch cfg.Mode {
	case "", ModeWords, ModeTree:
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	return nil
}

// Service generates sanitized next-word suggestions. It composes the
// catalog, chain builder, per-model pipelines, and the fallback executor,
// and applies sanitization to whatever payload the chain produces.
//
// All configuration is captured immutably at construction; Service is
// safe for concurrent use.
type Service struct {
	builder      *ChainBuilder
	catalog      *Catalog
	newSource    SourceFactory
	limiter      *rate.Limiter
	logger       *slog.Logger
	credential   string
	defaultModel string
	mode         Mode
	defaultCount int
	maxDepth     int
}

// New creates a Service with the given configuration.
func New(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeWords
	}
	defaultCount := cfg.DefaultCount
	if defaultCount < MinCount || defaultCount > MaxCount {
		defaultCount = DefaultCount
	}
	maxDepth := cfg.MaxDepth
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}

	newSource := cfg.Sources
	if newSource == nil {
		g := cfg.Genkit
		temperature := cfg.Temperature
		logger := cfg.Logger
		newSource = func(model ModelDescriptor) (Source, error) {
			return NewPipeline(g, model, mode, temperature, logger)
		}
	}

	s := &Service{
		builder:      NewChainBuilder(cfg.Catalog, cfg.PreferredModels, cfg.Logger),
		catalog:      cfg.Catalog,
		newSource:    newSource,
		limiter:      cfg.RateLimiter,
		logger:       cfg.Logger,
		credential:   cfg.Credential,
		defaultModel: cfg.DefaultModel,
		mode:         mode,
		defaultCount: defaultCount,
		maxDepth:     maxDepth,
	}

	s.logger.Info("suggestion service initialized",
		"mode", string(s.mode),
		"defaultCount", s.defaultCount,
	)
	return s, nil
}

// Generate produces the sanitized suggestion set for one request.
//
// The candidate count is clamped to [MinCount, MaxCount] (zero uses the
// configured default) before rendering, so the model is always asked for
// a bounded number of words. Failure modes: ModelUnavailableError for a
// pinned model the credential cannot use, ErrNoModelsAvailable when
// discovery came up empty, AllModelsFailedError when the whole chain was
// rejected, ParseError for schema-violating replies, and ErrNoSuggestions
// when sanitization leaves nothing.
func (s *Service) Generate(ctx context.Context, req Request) (*ResultSet, error) {
	req.Count = s.clampCount(req.Count)
	if req.Model == "" {
		req.Model = s.defaultModel
	}

	chain, err := s.builder.Build(ctx, req.Model, s.credential)
	if err != nil {
		return nil, err
	}

	sources := make([]Source, len(chain))
	for i, model := range chain {
		src, err := s.newSource(model)
		if err != nil {
			return nil, fmt.Errorf("building pipeline for %s: %w", model.Name, err)
		}
		sources[i] = src
	}

	payload, err := NewExecutor(sources, s.limiter, s.logger).Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.mode == ModeTree {
		tree := SanitizeTree(payload.Tree, req.Count, s.maxDepth)
		if len(tree) == 0 {
			return nil, ErrNoSuggestions
		}
		return &ResultSet{Tree: tree}, nil
	}

	words := Sanitize(payload.Words, req.Count)
	if len(words) == 0 {
		return nil, ErrNoSuggestions
	}
	return &ResultSet{Words: words}, nil
}

// Models returns the discovered model identifiers for the configured
// credential, in provider order.
func (s *Service) Models(ctx context.Context) []string {
	return Chain(s.catalog.Discover(ctx, s.credential)).Names()
}

// clampCount bounds the requested candidate count.
func (s *Service) clampCount(count int) int {
	switch {
	case count == 0:
		return s.defaultCount
	case count < MinCount:
		return MinCount
	case count > MaxCount:
		return MaxCount
	}
	return count
}
