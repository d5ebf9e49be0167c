package gpu_test

import (
	"errors"
	"testing"

	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/gpu/gputest"
)

func TestAcquirePrefersFirstCandidate(t *testing.T) {
	primary := gputest.New()
	fallbackOpened := false

	ctx, err := gpu.Acquire(
		gpu.Candidate{Name: "gl41", Open: func() (gpu.Context, error) { return primary, nil }},
		gpu.Candidate{Name: "gl21", Open: func() (gpu.Context, error) {
			fallbackOpened = true
			return gputest.New(), nil
		}},
	)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if ctx != primary {
		t.Errorf("expected the primary context")
	}
	if fallbackOpened {
		t.Errorf("fallback should not be opened when the primary succeeds")
	}
}

func TestAcquireFallsBack(t *testing.T) {
	fallback := gputest.New()

	ctx, err := gpu.Acquire(
		gpu.Candidate{Name: "gl41", Open: func() (gpu.Context, error) { return nil, errors.New("version unavailable") }},
		gpu.Candidate{Name: "gl21", Open: func() (gpu.Context, error) { return fallback, nil }},
	)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if ctx != fallback {
		t.Errorf("expected the fallback context")
	}
}

func TestAcquireNothingUsable(t *testing.T) {
	ctx, err := gpu.Acquire(
		gpu.Candidate{Name: "gl41", Open: func() (gpu.Context, error) { return nil, errors.New("no 4.1") }},
		gpu.Candidate{Name: "gl21", Open: func() (gpu.Context, error) { return nil, nil }},
	)
	if ctx != nil {
		t.Errorf("expected no context, got %v", ctx)
	}
	if !errors.Is(err, gpu.ErrNoContext) {
		t.Errorf("expected ErrNoContext, got %v", err)
	}

	if _, err := gpu.Acquire(); !errors.Is(err, gpu.ErrNoContext) {
		t.Errorf("expected ErrNoContext with no candidates, got %v", err)
	}
}
