package suggest

// Mode selects the shape of the payload a pipeline asks the model for.
// The two shapes share the same sanitization rules; ModeWords is the
// canonical deployment shape.
type Mode string

const (
	// ModeWords asks for a flat, ranked list of single words.
	ModeWords Mode = "words"
	// ModeTree asks for branching continuations: each word carries the
	// likely words that follow it.
	ModeTree Mode = "tree"
)

// ModelDescriptor identifies one discovered model. Immutable once
// discovered. Only models advertising content generation make it into
// a descriptor, so every entry supports schema-constrained output.
type ModelDescriptor struct {
	// Name is the short model identifier, e.g. "gemini-2.0-flash".
	Name string
}

// Chain is the ordered list of models to attempt for one request.
type Chain []ModelDescriptor

// Names returns the chain's model identifiers in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, d := range c {
		names[i] = d.Name
	}
	return names
}

// Request carries the per-call inputs for suggestion generation.
type Request struct {
	// SourceText is the full sentence the other person just said.
	SourceText string `json:"question"`
	// PartialReply is what the user has spoken so far. May be empty.
	PartialReply string `json:"partial_answer"`
	// Count is the requested number of candidates. Clamped to
	// [MinCount, MaxCount]; zero means "use the configured default".
	Count int `json:"suggestions_count"`
	// Model optionally pins a specific model. When set, the chain is that
	// single model and an unknown name fails with ModelUnavailableError.
	Model string `json:"model,omitempty"`
}

// Branch is one node of a suggestion tree: a word plus the words likely
// to follow it. Field descriptions live in the hand-built schema in
// prompt.go, not in struct tags.
type Branch struct {
	Word string   `json:"word"`
	Next []Branch `json:"next,omitempty"`
}

// Payload is the parsed model output handed to sanitization. Exactly one
// field is populated, matching the pipeline's Mode.
type Payload struct {
	Words []string
	Tree  []Branch
}

// flatPayload is the wire shape for ModeWords responses.
type flatPayload struct {
	Suggestions []string `json:"suggestions"`
}

// treePayload is the wire shape for ModeTree responses. Its schema is
// treeSchema in prompt.go.
type treePayload struct {
	Suggestions []Branch `json:"suggestions"`
}

// ResultSet is the sanitized outcome of one request. Words is populated
// in ModeWords, Tree in ModeTree.
type ResultSet struct {
	Words []string `json:"suggestions,omitempty"`
	Tree  []Branch `json:"tree,omitempty"`
}
