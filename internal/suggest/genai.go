package suggest

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiLister lists models through the Gemini API. A fresh client is
// built per call with the supplied credential; the Catalog's cache keeps
// this to one provider round-trip per credential.
type GeminiLister struct{}

// ListModels implements ModelLister against the Gemini API.
func (GeminiLister) ListModels(ctx context.Context, credential string) ([]ProviderModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	var models []ProviderModel
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("listing models: %w", err)
		}
		// Provider names look like "models/gemini-2.0-flash"; keep the
		// short identifier.
		models = append(models, ProviderModel{
			Name:    strings.TrimPrefix(m.Name, "models/"),
			Actions: m.SupportedActions,
		})
	}
	return models, nil
}
