package api

import (
	"errors"
	"net/http"

	"github.com/firebase/genkit/go/genkit"

	"github.com/hclsu/nextword/internal/log"
	"github.com/hclsu/nextword/internal/suggest"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Logger      log.Logger
	Service     Suggester     // required
	Flow        *suggest.Flow // optional: mounts the Genkit flow handler
	CORSOrigins []string
	TrustProxy  bool    // honor X-Real-IP/X-Forwarded-For behind a reverse proxy
	RateRPS     float64 // token refill per second per IP (0 = default 5)
	RateBurst   int     // bucket size per IP (0 = default 10)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer wires routes and the middleware stack.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("suggestion service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	sh := &suggestHandler{svc: cfg.Service, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/suggestions", sh.create)
	mux.HandleFunc("GET /api/v1/models", sh.listModels)

	// The flow handler exposes the same operation with Genkit's wire
	// format, useful for the genkit dev tooling.
	if cfg.Flow != nil {
		mux.Handle("POST /api/v1/flows/suggest", genkit.Handler(cfg.Flow))
	}

	rps := cfg.RateRPS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}
	rl := newRateLimiter(rps, burst)

	// Outermost first. RequestID precedes logging so log records carry
	// the ID; CORS precedes the limiter so preflights are never throttled.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		handler.ServeHTTP(w, r)
	})

	// Health sits outside the middleware stack.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /healthz", healthz(logger))
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
