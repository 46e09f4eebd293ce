package api

import (
	"net/http"

	"github.com/hclsu/nextword/internal/log"
)

// healthz is the liveness probe for container orchestrators.
func healthz(logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
