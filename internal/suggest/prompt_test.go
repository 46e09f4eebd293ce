package suggest

import (
	"strings"
	"testing"
)

func TestRenderSystemEmbedsSchema(t *testing.T) {
	t.Parallel()

	system, err := renderSystem(ModeWords)
	if err != nil {
		t.Fatalf("renderSystem() error = %v", err)
	}

	for _, want := range []string{
		"Respond only with JSON matching this schema",
		`"suggestions"`,
		"ranked from most to least likely as the user's next word",
		"single words in lowercase",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("system turn missing %q", want)
		}
	}
}

func TestRenderSystemTreeSchema(t *testing.T) {
	t.Parallel()

	// Branch is recursive, so the tree schema cannot come from type
	// derivation; the hand-built schema must render with the recursion
	// expressed as a $ref.
	system, err := renderSystem(ModeTree)
	if err != nil {
		t.Fatalf("renderSystem() error = %v", err)
	}

	for _, want := range []string{
		`"word"`,
		`"next"`,
		`"$defs"`,
		`#/$defs/Branch`,
		"A single suggested next word.",
		"Likely words to say after this one",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("tree system turn missing %q", want)
		}
	}
}

func TestTreeSchemaMatchesWireTypes(t *testing.T) {
	t.Parallel()

	schema := treeSchema()

	branch, ok := schema.Defs["Branch"]
	if !ok {
		t.Fatal("tree schema missing the Branch definition")
	}
	for _, field := range []string{"word", "next"} {
		if _, ok := branch.Properties[field]; !ok {
			t.Errorf("Branch schema missing %q property", field)
		}
	}
	if _, ok := schema.Properties["suggestions"]; !ok {
		t.Error("tree schema missing the suggestions property")
	}
}

func TestNewPipelineTreeMode(t *testing.T) {
	t.Parallel()

	// Pipeline construction renders the system turn; tree mode must not
	// fail here.
	p, err := NewPipeline(nil, ModelDescriptor{Name: "gemini-2.0-flash"}, ModeTree, 0, nil)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if p.Model() != "gemini-2.0-flash" {
		t.Errorf("Model() = %q", p.Model())
	}
	if !strings.Contains(p.system, `#/$defs/Branch`) {
		t.Error("tree pipeline system turn missing the recursive schema")
	}
}

func TestRenderMessages(t *testing.T) {
	t.Parallel()

	msgs := renderMessages("SYSTEM", Request{
		SourceText:   "  Would you like some water?  ",
		PartialReply: " Yes ",
		Count:        3,
	})

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content[0].Text != "SYSTEM" {
		t.Errorf("first message is not the system turn")
	}

	user := msgs[1].Content[0].Text
	for _, want := range []string{
		"Would you like some water?",
		"User's reply so far: Yes",
		"exactly 3 distinct",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user turn missing %q, got:\n%s", want, user)
		}
	}
	if strings.Contains(user, "  Would") {
		t.Error("source text was not trimmed")
	}
}
