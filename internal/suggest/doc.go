// Package suggest implements the next-word suggestion pipeline.
//
// A single request flows through four stages:
//
//  1. Catalog — discovers which Gemini models the credential can use for
//     content generation, cached per credential for the process lifetime.
//  2. ChainBuilder — turns the discovered set (and an optional pinned
//     model) into an ordered chain of candidate models.
//  3. Executor — invokes one Pipeline per chain entry, strictly in order,
//     advancing only on the provider's "model not found" failure class.
//  4. Sanitize / SanitizeTree — normalizes the parsed model output into
//     the final candidate list: trimmed, deduplicated, bounded.
//
// Service ties the stages together and is what the API layer talks to.
//
// Error handling follows the rest of the codebase: sentinel errors
// (ErrNoModelsAvailable, ErrNoSuggestions, ErrModelNotFound) checked with
// errors.Is, and typed errors (ModelUnavailableError, AllModelsFailedError,
// ParseError) checked with errors.As. Fallback is deliberately narrow: any
// failure that is not a model-availability problem propagates immediately
// so parse errors, auth errors, and timeouts are never masked by retries
// against other models.
package suggest
