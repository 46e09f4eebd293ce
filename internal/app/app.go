// Package app assembles the service: configuration, logging, tracing,
// Genkit, the suggestion service, and the HTTP server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/hclsu/nextword/internal/config"
	"github.com/hclsu/nextword/internal/log"
	"github.com/hclsu/nextword/internal/suggest"
)

// App is the assembled application container.
type App struct {
	Config  *config.Config
	Logger  log.Logger
	Genkit  *genkit.Genkit
	Catalog *suggest.Catalog
	Service *suggest.Service
	Flow    *suggest.Flow
	Handler http.Handler

	otelShutdown func(context.Context) error
}

// Close flushes pending trace spans and releases resources.
func (a *App) Close() error {
	if a.Logger != nil {
		a.Logger.Info("shutting down")
	}

	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil && a.Logger != nil {
			a.Logger.Warn("shutting down tracer provider", "error", err)
		}
	}

	return nil
}
