package suggest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/hclsu/nextword/internal/log"
)

// fakeSource is an injectable Source with a scripted outcome.
type fakeSource struct {
	name    string
	payload Payload
	err     error
	calls   int
}

func (f *fakeSource) Model() string { return f.name }

func (f *fakeSource) Invoke(_ context.Context, _ Request) (Payload, error) {
	f.calls++
	return f.payload, f.err
}

func (f *fakeSource) InvokeAsync(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		payload, err := f.Invoke(ctx, req)
		ch <- Result{Payload: payload, Err: err}
	}()
	return ch
}

func notFound(model string) error {
	return fmt.Errorf("model %s: %w", model, ErrModelNotFound)
}

func TestExecutorFallsThroughToSuccess(t *testing.T) {
	t.Parallel()

	a := &fakeSource{name: "A", err: notFound("A")}
	b := &fakeSource{name: "B", err: notFound("B")}
	c := &fakeSource{name: "C", payload: Payload{Words: []string{"sure"}}}
	exec := NewExecutor([]Source{a, b, c}, nil, log.NewNop())

	payload, err := exec.Run(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !slices.Equal(payload.Words, []string{"sure"}) {
		t.Errorf("payload = %v, want C's result", payload.Words)
	}
	for _, src := range []*fakeSource{a, b, c} {
		if src.calls != 1 {
			t.Errorf("source %s invoked %d times, want exactly once", src.name, src.calls)
		}
	}
}

func TestExecutorAllModelsFail(t *testing.T) {
	t.Parallel()

	a := &fakeSource{name: "A", err: notFound("A")}
	b := &fakeSource{name: "B", err: notFound("B")}
	exec := NewExecutor([]Source{a, b}, nil, log.NewNop())

	_, err := exec.Run(context.Background(), Request{})

	var failed *AllModelsFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected AllModelsFailedError, got %v", err)
	}
	if !slices.Equal(failed.Tried, []string{"A", "B"}) {
		t.Errorf("Tried = %v, want [A B] in order", failed.Tried)
	}
}

func TestExecutorPropagatesOtherFailures(t *testing.T) {
	t.Parallel()

	parseErr := &ParseError{Model: "A", Raw: "gibberish", Err: errors.New("bad json")}
	a := &fakeSource{name: "A", err: parseErr}
	b := &fakeSource{name: "B", payload: Payload{Words: []string{"unreached"}}}
	exec := NewExecutor([]Source{a, b}, nil, log.NewNop())

	_, err := exec.Run(context.Background(), Request{})

	var got *ParseError
	if !errors.As(err, &got) {
		t.Fatalf("expected the parse error to propagate, got %v", err)
	}
	if b.calls != 0 {
		t.Errorf("source B was tried after a non-availability failure")
	}
}

func TestExecutorEmptyChain(t *testing.T) {
	t.Parallel()

	exec := NewExecutor(nil, nil, log.NewNop())

	_, err := exec.Run(context.Background(), Request{})
	if !errors.Is(err, ErrNoModelsAvailable) {
		t.Errorf("expected ErrNoModelsAvailable, got %v", err)
	}
}

func TestExecutorRunAsyncMatchesRun(t *testing.T) {
	t.Parallel()

	a := &fakeSource{name: "A", err: notFound("A")}
	b := &fakeSource{name: "B", payload: Payload{Words: []string{"ok"}}}
	exec := NewExecutor([]Source{a, b}, nil, log.NewNop())

	result := <-exec.RunAsync(context.Background(), Request{})
	if result.Err != nil {
		t.Fatalf("RunAsync() error = %v", result.Err)
	}
	if !slices.Equal(result.Payload.Words, []string{"ok"}) {
		t.Errorf("payload = %v, want B's result", result.Payload.Words)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("attempt counts = %d, %d; want 1, 1", a.calls, b.calls)
	}
}

func TestExecutorRunAsyncAllFail(t *testing.T) {
	t.Parallel()

	a := &fakeSource{name: "A", err: notFound("A")}
	exec := NewExecutor([]Source{a}, nil, log.NewNop())

	result := <-exec.RunAsync(context.Background(), Request{})

	var failed *AllModelsFailedError
	if !errors.As(result.Err, &failed) {
		t.Fatalf("expected AllModelsFailedError, got %v", result.Err)
	}
	if !slices.Equal(failed.Tried, []string{"A"}) {
		t.Errorf("Tried = %v, want [A]", failed.Tried)
	}
}
