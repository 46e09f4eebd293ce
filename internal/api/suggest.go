package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hclsu/nextword/internal/log"
	"github.com/hclsu/nextword/internal/suggest"
)

// Suggester is the slice of suggest.Service the handlers need.
type Suggester interface {
	Generate(ctx context.Context, req suggest.Request) (*suggest.ResultSet, error)
	Models(ctx context.Context) []string
}

// suggestHandler serves suggestion generation and model listing.
type suggestHandler struct {
	svc    Suggester
	logger log.Logger
}

// create handles POST /api/v1/suggestions.
func (h *suggestHandler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req suggest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", h.logger)
		return
	}

	if strings.TrimSpace(req.SourceText) == "" {
		writeError(w, http.StatusBadRequest, "missing_question", "question is required", h.logger)
		return
	}

	result, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result, h.logger)
}

// listModels handles GET /api/v1/models.
func (h *suggestHandler) listModels(w http.ResponseWriter, r *http.Request) {
	models := h.svc.Models(r.Context())
	writeJSON(w, http.StatusOK, map[string][]string{"models": models}, h.logger)
}

// writeServiceError maps the suggest error taxonomy onto HTTP statuses.
func (h *suggestHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unavailable *suggest.ModelUnavailableError
		allFailed   *suggest.AllModelsFailedError
		parse       *suggest.ParseError
	)

	switch {
	case errors.As(err, &unavailable):
		writeError(w, http.StatusNotFound, "model_unavailable", unavailable.Error(), h.logger)

	case errors.Is(err, suggest.ErrNoModelsAvailable):
		writeError(w, http.StatusServiceUnavailable, "no_models_available", "no usable models for this credential", h.logger)

	case errors.As(err, &allFailed):
		h.logger.Error("all models failed", "tried", allFailed.Tried, "error", allFailed.Last)
		writeError(w, http.StatusBadGateway, "all_models_failed", allFailed.Error(), h.logger)

	case errors.As(err, &parse):
		h.logger.Warn("unparseable model output", "model", parse.Model, "error", parse.Err)
		writeError(w, http.StatusUnprocessableEntity, "malformed_model_output", "model returned an unusable response", h.logger)

	case errors.Is(err, suggest.ErrNoSuggestions):
		writeError(w, http.StatusUnprocessableEntity, "no_suggestions", "no usable suggestions were produced", h.logger)

	default:
		h.logger.Error("generating suggestions", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", h.logger)
	}
}
