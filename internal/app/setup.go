package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"golang.org/x/time/rate"

	"github.com/hclsu/nextword/internal/api"
	"github.com/hclsu/nextword/internal/config"
	"github.com/hclsu/nextword/internal/log"
	"github.com/hclsu/nextword/internal/observability"
	"github.com/hclsu/nextword/internal/suggest"
)

// Setup builds the application from validated configuration.
// On failure, anything already initialized is released.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	// Tracing registers with Genkit's TracerProvider, so it goes first.
	a.otelShutdown = observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.OTLP.Endpoint,
		Environment: cfg.OTLP.Environment,
		ServiceName: cfg.OTLP.ServiceName,
	}, logger)

	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: cfg.GoogleAPIKey}),
	)
	if g == nil {
		return nil, errors.New("initializing genkit with googleai plugin")
	}
	a.Genkit = g

	a.Catalog = suggest.NewCatalog(
		suggest.GeminiLister{},
		logger.With("component", "catalog"),
	)

	svc, err := suggest.New(suggest.Config{
		Genkit:       g,
		Catalog:      a.Catalog,
		Logger:       logger.With("component", "suggest"),
		Credential:   cfg.GoogleAPIKey,
		Mode:         suggest.Mode(cfg.Mode),
		DefaultModel: cfg.ModelName,
		DefaultCount: cfg.SuggestionsCount,
		Temperature:  cfg.Temperature,
		MaxDepth:     cfg.MaxDepth,
		// One bucket across all requests keeps the provider quota safe
		// even when the HTTP limiter lets bursts through.
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	})
	if err != nil {
		return nil, fmt.Errorf("creating suggestion service: %w", err)
	}
	a.Service = svc

	a.Flow = suggest.DefineFlow(g, svc)

	srv, err := api.NewServer(api.ServerConfig{
		Logger:      logger.With("component", "api"),
		Service:     svc,
		Flow:        a.Flow,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		RateRPS:     cfg.RateLimitRPS,
		RateBurst:   cfg.RateLimitBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}
	a.Handler = srv.Handler()

	logger.Info("application assembled",
		"mode", cfg.Mode,
		"model_pin", cfg.ModelName,
		"addr", cfg.Addr,
	)
	return a, nil
}
