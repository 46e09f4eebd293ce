package suggest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestIsModelUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "sentinel",
			err:  ErrModelNotFound,
			want: true,
		},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("generating with gemini-2.0-flash: %w", ErrModelNotFound),
			want: true,
		},
		{
			name: "gemini 404",
			err:  genai.APIError{Code: 404, Message: "model not found"},
			want: true,
		},
		{
			name: "wrapped gemini 404",
			err:  fmt.Errorf("generate: %w", genai.APIError{Code: 404}),
			want: true,
		},
		{
			name: "gemini 429 is not availability",
			err:  genai.APIError{Code: 429, Message: "quota"},
			want: false,
		},
		{
			name: "gemini 500 is not availability",
			err:  genai.APIError{Code: 500},
			want: false,
		},
		{
			name: "parse error is not availability",
			err:  &ParseError{Model: "m", Raw: "x", Err: errors.New("bad json")},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsModelUnavailable(tt.err); got != tt.want {
				t.Errorf("IsModelUnavailable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestModelUnavailableErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ModelUnavailableError{Requested: "gemini-9000", Available: []string{"a", "b"}}
	msg := err.Error()
	for _, want := range []string{"gemini-9000", "a, b"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	empty := &ModelUnavailableError{Requested: "gemini-9000"}
	if !strings.Contains(empty.Error(), "NONE") {
		t.Errorf("message %q should mark an empty available set", empty.Error())
	}
}

func TestAllModelsFailedErrorUnwraps(t *testing.T) {
	t.Parallel()

	last := fmt.Errorf("generate: %w", ErrModelNotFound)
	err := &AllModelsFailedError{Tried: []string{"a", "b"}, Last: last}

	if !errors.Is(err, ErrModelNotFound) {
		t.Error("AllModelsFailedError should unwrap to the last provider error")
	}
	if !strings.Contains(err.Error(), "a, b") {
		t.Errorf("message %q missing attempt order", err.Error())
	}
}
