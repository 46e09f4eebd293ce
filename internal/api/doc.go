// Package api serves the suggestion service over HTTP.
//
// Routes:
//   - POST /api/v1/suggestions      generate next-word suggestions
//   - GET  /api/v1/models           list usable Gemini models
//   - POST /api/v1/flows/suggest    the same operation via the Genkit flow handler
//   - GET  /healthz                 liveness probe
//
// Requests pass through a layered middleware stack:
//
//	Recovery → RequestID → Logging → CORS → RateLimit → Routes
//
// The health probe bypasses the stack via a top-level mux so it stays
// fast and unthrottled.
//
// Handlers translate the suggest package's error taxonomy into HTTP
// status codes:
//   - 400 malformed body or missing question
//   - 404 a pinned model is not available
//   - 422 the model answered but nothing usable came back
//   - 502 every model in the fallback chain failed
//   - 503 the credential can use no models at all
//
// Errors use the envelope {"error": {"code": "...", "message": "..."}}.
package api
