package suggest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Sentinel errors checked with errors.Is().
var (
	// ErrNoModelsAvailable indicates discovery yielded no model that
	// supports content generation for the credential. Treated as a
	// configuration/access problem and surfaced verbatim.
	ErrNoModelsAvailable = errors.New("no models with content generation available for this credential")

	// ErrNoSuggestions indicates the model answered but nothing survived
	// sanitization. Used by: api/suggest.go for HTTP status mapping.
	ErrNoSuggestions = errors.New("no valid suggestions")

	// ErrModelNotFound marks an error as the provider's "model not found
	// or not accessible" class. Sources may wrap it explicitly; Gemini
	// API errors are recognized by status code instead.
	ErrModelNotFound = errors.New("model not found")
)

// ModelUnavailableError is returned when an explicitly requested model is
// not in the discovered set. The available set is included so the caller
// can surface a correctable message; no silent substitution happens.
type ModelUnavailableError struct {
	Requested string
	Available []string
}

func (e *ModelUnavailableError) Error() string {
	available := strings.Join(e.Available, ", ")
	if available == "" {
		available = "NONE"
	}
	return fmt.Sprintf("requested model %q not available for this credential (available: %s)", e.Requested, available)
}

// AllModelsFailedError is returned when every chain entry was rejected by
// the provider as not found. Tried preserves attempt order for diagnosis.
type AllModelsFailedError struct {
	Tried []string
	Last  error
}

func (e *AllModelsFailedError) Error() string {
	return fmt.Sprintf("no model succeeded, tried in order: %s", strings.Join(e.Tried, ", "))
}

func (e *AllModelsFailedError) Unwrap() error { return e.Last }

// ParseError is returned when a model responded but the response did not
// match the expected output schema. Raw carries the model text for
// diagnostics. Not retried: a schema violation is not fixed by asking the
// next model in the chain.
type ParseError struct {
	Model string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model %s returned unparseable suggestions: %v", e.Model, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsModelUnavailable reports whether err belongs to the provider's "model
// not found / not accessible" failure class — the only class that advances
// the fallback chain. Matches the ErrModelNotFound sentinel and Gemini API
// errors carrying HTTP 404.
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelNotFound) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusNotFound
	}
	return false
}
