package suggest

import (
	"context"

	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

// FlowName is the registered name of the suggestion flow in Genkit.
const FlowName = "nextword/suggest"

// Flow is the type alias for the suggestion Genkit Flow. Exported for use
// in the api package with genkit.Handler().
type Flow = core.Flow[Request, ResultSet, struct{}]

// DefineFlow registers the suggestion flow. The flow is a thin wrapper:
// Service.Generate holds the logic, the flow contributes tracing, typed
// input/output, and HTTP exposure via genkit.Handler().
//
// DefineFlow registers a global action; call it once during startup.
func DefineFlow(g *genkit.Genkit, svc *Service) *Flow {
	return genkit.DefineFlow(g, FlowName,
		func(ctx context.Context, req Request) (ResultSet, error) {
			result, err := svc.Generate(ctx, req)
			if err != nil {
				return ResultSet{}, err
			}
			return *result, nil
		},
	)
}
