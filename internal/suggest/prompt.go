package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/jsonschema-go/jsonschema"
)

// systemInstruction is the fixed system turn. The %s placeholder receives
// the schema-derived output-format instructions.
const systemInstruction = `You help a user craft a spoken reply by suggesting the next word they might say. You are always given a full sentence that someone else just said and the partial reply the user has already spoken. %s
Guidelines:
- Suggest the most probable next words the user should say to continue their reply.
- Prioritize coherent, conversational words that answer the other person's sentence.
- Prefer concise, single words in lowercase unless proper nouns or acronyms are required.
- Never repeat a word that already appears in the suggestions list.
- If the partial reply is empty, offer likely first words of the response.
- Avoid punctuation, fillers, or multi-word phrases; respond one word at a time.`

// userTurn is the variable user turn. Placeholders: source sentence,
// partial reply, requested count.
const userTurn = `Incoming sentence from another person: %s
User's reply so far: %s
Return exactly %d distinct single-word candidates in order of likelihood.`

// formatInstructions builds the output-format portion of the system turn
// from the payload schema for the given mode, so the model is asked to
// return exactly the structure the parser expects.
func formatInstructions(mode Mode) (string, error) {
	schema, err := payloadSchema(mode)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encoding output schema: %w", err)
	}
	return "Respond only with JSON matching this schema:\n" + string(encoded), nil
}

// payloadSchema returns the wire schema for the mode's payload. The flat
// schema is derived from flatPayload; the tree schema is spelled out by
// hand because Branch is recursive and schema derivation rejects cyclic
// types, so the self-reference needs an explicit $defs/$ref pair.
func payloadSchema(mode Mode) (*jsonschema.Schema, error) {
	if mode == ModeTree {
		return treeSchema(), nil
	}

	schema, err := jsonschema.For[flatPayload](nil)
	if err != nil {
		return nil, fmt.Errorf("deriving output schema: %w", err)
	}
	if prop, ok := schema.Properties["suggestions"]; ok {
		prop.Description = "Ordered list of single-word suggestions ranked from most to least likely as the user's next word."
	}
	return schema, nil
}

// treeSchema is the treePayload wire schema with Branch as a recursive
// $ref. Field names and optionality must stay in lockstep with the
// Branch and treePayload structs.
func treeSchema() *jsonschema.Schema {
	branch := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"word"},
		Properties: map[string]*jsonschema.Schema{
			"word": {
				Type:        "string",
				Description: "A single suggested next word.",
			},
			"next": {
				Type:        "array",
				Description: "Likely words to say after this one, ranked from most to least likely.",
				Items:       &jsonschema.Schema{Ref: "#/$defs/Branch"},
			},
		},
	}
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"suggestions"},
		Defs:     map[string]*jsonschema.Schema{"Branch": branch},
		Properties: map[string]*jsonschema.Schema{
			"suggestions": {
				Type:        "array",
				Description: "Ordered list of suggestion branches ranked from most to least likely.",
				Items:       &jsonschema.Schema{Ref: "#/$defs/Branch"},
			},
		},
	}
}

// renderSystem builds the complete system turn for the given mode.
func renderSystem(mode Mode) (string, error) {
	instructions, err := formatInstructions(mode)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(systemInstruction, instructions), nil
}

// renderMessages builds the two-turn prompt for one request: the fixed
// system turn plus a user turn embedding the trimmed request variables.
func renderMessages(system string, req Request) []*ai.Message {
	user := fmt.Sprintf(userTurn,
		strings.TrimSpace(req.SourceText),
		strings.TrimSpace(req.PartialReply),
		req.Count,
	)
	return []*ai.Message{
		ai.NewSystemTextMessage(system),
		ai.NewUserTextMessage(user),
	}
}
