package render

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// framesToConverge steps s until the pointer is within dist of its target
func framesToConverge(s State, alpha, dist float32, limit int) int {
	for n := 0; n < limit; n++ {
		if s.PointerDistance() < dist {
			return n
		}
		s.Step(alpha)
	}
	return limit
}

func TestEaseConvergesWithinThirtyFrames(t *testing.T) {
	s := NewState(1)
	s.Target.Pointer = mgl32.Vec2{0.9, 0.1}

	for i := 0; i < 30; i++ {
		s.Step(EaseFactor)
	}
	if d := s.PointerDistance(); d >= 1e-3 {
		t.Errorf("distance after 30 frames = %v, want < 0.001", d)
	}
}

func TestEaseIsMonotonicPerAxis(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		s := NewState(1)
		s.Current.Pointer = mgl32.Vec2{rng.Float32(), rng.Float32()}
		s.Target.Pointer = mgl32.Vec2{rng.Float32(), rng.Float32()}

		prevX := math32.Abs(s.Target.Pointer[0] - s.Current.Pointer[0])
		prevY := math32.Abs(s.Target.Pointer[1] - s.Current.Pointer[1])
		converged := -1
		for n := 0; n < 200; n++ {
			s.Step(EaseFactor)
			dx := math32.Abs(s.Target.Pointer[0] - s.Current.Pointer[0])
			dy := math32.Abs(s.Target.Pointer[1] - s.Current.Pointer[1])
			if dx > prevX || dy > prevY {
				t.Fatalf("trial %d frame %d: distance grew (%v,%v) -> (%v,%v)", trial, n, prevX, prevY, dx, dy)
			}
			prevX, prevY = dx, dy
			if converged < 0 && s.PointerDistance() < 1e-3 {
				converged = n + 1
			}
		}
		// worst case start distance is sqrt(2): 0.8^n * sqrt(2) < 1e-3 by n = 33
		if converged < 0 || converged > 33 {
			t.Errorf("trial %d: converged after %d frames", trial, converged)
		}
	}
}

func TestReducedMotionNeedsMoreFrames(t *testing.T) {
	s := NewState(1)
	s.Target.Pointer = mgl32.Vec2{0.9, 0.1}
	s.Target.Zoom = 1.5

	normal := framesToConverge(s, EaseFactor, 1e-3, 10000)
	reduced := framesToConverge(s, ReducedEaseFactor, 1e-3, 10000)

	if normal >= 10000 || reduced >= 10000 {
		t.Fatalf("did not converge: normal=%d reduced=%d", normal, reduced)
	}
	if reduced <= normal {
		t.Errorf("reduced motion should take longer: normal=%d reduced=%d", normal, reduced)
	}
}

func TestSettled(t *testing.T) {
	s := NewState(1)
	if !s.Settled(Epsilon) {
		t.Errorf("fresh state should be settled")
	}
	s.Target.Zoom = 1.04
	if s.Settled(Epsilon) {
		t.Errorf("zoom delta should count")
	}
	for i := 0; i < 200; i++ {
		s.Step(EaseFactor)
	}
	if !s.Settled(Epsilon) {
		t.Errorf("state should settle, zoom=%v", s.Current.Zoom)
	}
}

func TestEase(t *testing.T) {
	if got := Ease(0, 1, 0.2); !mgl32.FloatEqual(got, 0.2) {
		t.Errorf("Ease(0,1,0.2) = %v", got)
	}
	if got := Ease(1, 1, 0.2); got != 1 {
		t.Errorf("Ease at target moved to %v", got)
	}
}
