package suggest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"google.golang.org/genai"
)

// geminiProviderPrefix qualifies short model names for Genkit's registry.
const geminiProviderPrefix = "googleai/"

// DefaultTemperature keeps suggestion output focused; next-word ranking
// degrades quickly at higher sampling temperatures.
const DefaultTemperature float32 = 0.3

// Result is the outcome delivered by the non-blocking invocation entry
// points.
type Result struct {
	Payload Payload
	Err     error
}

// Source is one invokable suggestion producer. The executor is generic
// over this interface rather than a concrete provider binding, so tests
// and alternative providers plug in directly.
//
// Both entry points carry identical semantics; InvokeAsync only moves the
// wait to a channel receive. Sources must not retry internally — retrying
// across models is the executor's job.
type Source interface {
	// Model returns the short identifier of the bound model.
	Model() string
	// Invoke renders the prompt, calls the model, and parses the reply.
	Invoke(ctx context.Context, req Request) (Payload, error)
	// InvokeAsync is the non-blocking equivalent of Invoke. The returned
	// channel delivers exactly one Result and is then closed.
	InvokeAsync(ctx context.Context, req Request) <-chan Result
}

// Pipeline binds one model to the prompt template and a structured-output
// parse of the reply.
type Pipeline struct {
	g           *genkit.Genkit
	model       ModelDescriptor
	mode        Mode
	system      string
	temperature float32
	logger      *slog.Logger
}

// NewPipeline creates a pipeline for the given model. The system turn,
// including the schema-derived format instructions, is rendered once here
// rather than per request.
func NewPipeline(g *genkit.Genkit, model ModelDescriptor, mode Mode, temperature float32, logger *slog.Logger) (*Pipeline, error) {
	system, err := renderSystem(mode)
	if err != nil {
		return nil, fmt.Errorf("rendering system turn: %w", err)
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		g:           g,
		model:       model,
		mode:        mode,
		system:      system,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// Model implements Source.
func (p *Pipeline) Model() string { return p.model.Name }

// Invoke implements Source. Generation errors (availability, auth,
// network) propagate as returned by the provider so the executor can
// classify them; replies that do not match the output schema become a
// ParseError carrying the raw model text.
func (p *Pipeline) Invoke(ctx context.Context, req Request) (Payload, error) {
	opts := []ai.GenerateOption{
		ai.WithModelName(geminiProviderPrefix + p.model.Name),
		ai.WithMessages(renderMessages(p.system, req)...),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature: genai.Ptr(p.temperature),
		}),
	}
	if p.mode == ModeTree {
		opts = append(opts, ai.WithOutputType(treePayload{}))
	} else {
		opts = append(opts, ai.WithOutputType(flatPayload{}))
	}

	resp, err := genkit.Generate(ctx, p.g, opts...)
	if err != nil {
		return Payload{}, fmt.Errorf("generating with %s: %w", p.model.Name, err)
	}

	if p.mode == ModeTree {
		var out treePayload
		if err := resp.Output(&out); err != nil {
			return Payload{}, &ParseError{Model: p.model.Name, Raw: resp.Text(), Err: err}
		}
		return Payload{Tree: out.Suggestions}, nil
	}

	var out flatPayload
	if err := resp.Output(&out); err != nil {
		return Payload{}, &ParseError{Model: p.model.Name, Raw: resp.Text(), Err: err}
	}
	return Payload{Words: out.Suggestions}, nil
}

// InvokeAsync implements Source.
func (p *Pipeline) InvokeAsync(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		payload, err := p.Invoke(ctx, req)
		ch <- Result{Payload: payload, Err: err}
	}()
	return ch
}
