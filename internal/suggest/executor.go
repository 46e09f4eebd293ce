package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Executor walks a chain of sources strictly in order, stopping at the
// first success. Only the provider's "model not found" failure class
// advances the chain; every other failure propagates immediately without
// trying further entries.
//
// Entries are tried sequentially, never concurrently: each attempt is a
// paid model call, and racing calls that are expected to fail fast wastes
// quota.
type Executor struct {
	sources []Source
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewExecutor creates an executor over the given sources. limiter is
// optional; when set, every attempt waits for a token first.
func NewExecutor(sources []Source, limiter *rate.Limiter, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{sources: sources, limiter: limiter, logger: logger}
}

// Run invokes the sources in order and returns the first successful
// payload. If every source fails with the availability class, the result
// is an AllModelsFailedError listing the models tried, in order.
func (e *Executor) Run(ctx context.Context, req Request) (Payload, error) {
	if len(e.sources) == 0 {
		return Payload{}, ErrNoModelsAvailable
	}

	start := time.Now()
	tried := make([]string, 0, len(e.sources))
	var lastErr error

	for _, src := range e.sources {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return Payload{}, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		tried = append(tried, src.Model())
		payload, err := src.Invoke(ctx, req)
		if err == nil {
			e.logger.Debug("suggestion generated",
				"model", src.Model(),
				"attempts", len(tried),
				"elapsed", time.Since(start),
			)
			return payload, nil
		}

		if !IsModelUnavailable(err) {
			return Payload{}, err
		}

		lastErr = err
		e.logger.Warn("model unavailable, trying next in chain",
			"model", src.Model(),
			"error", err,
		)
	}

	return Payload{}, &AllModelsFailedError{Tried: tried, Last: lastErr}
}

// RunAsync is the non-blocking equivalent of Run. The chain is still
// walked strictly sequentially inside; only the wait moves to a channel
// receive. The returned channel delivers exactly one Result and is then
// closed.
func (e *Executor) RunAsync(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		payload, err := e.Run(ctx, req)
		ch <- Result{Payload: payload, Err: err}
	}()
	return ch
}
