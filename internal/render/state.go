package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Easing constants
const (
	EaseFactor        float32 = 0.2
	ReducedEaseFactor float32 = 0.05
	Epsilon           float32 = 1e-4
)

// Target is where input wants the view to be. Only input.Tracker writes it.
type Target struct {
	Pointer mgl32.Vec2
	Zoom    float32
}

// Current is what was last drawn. Only the Loop writes it.
type Current struct {
	Pointer mgl32.Vec2
	Zoom    float32
}

// State pairs the eased values with their targets
type State struct {
	Current Current
	Target  Target
}

// NewState centers the pointer and sets both zooms to zoom
func NewState(zoom float32) State {
	center := mgl32.Vec2{0.5, 0.5}
	return State{
		Current: Current{Pointer: center, Zoom: zoom},
		Target:  Target{Pointer: center, Zoom: zoom},
	}
}

// Ease moves current toward target by alpha of the remaining distance
func Ease(current, target, alpha float32) float32 {
	return current + (target-current)*alpha
}

// Step eases every current field once
func (s *State) Step(alpha float32) {
	s.Current.Pointer = mgl32.Vec2{
		Ease(s.Current.Pointer[0], s.Target.Pointer[0], alpha),
		Ease(s.Current.Pointer[1], s.Target.Pointer[1], alpha),
	}
	s.Current.Zoom = Ease(s.Current.Zoom, s.Target.Zoom, alpha)
}

// PointerDistance is the euclidean distance between current and target
// pointer
func (s *State) PointerDistance() float32 {
	d := s.Target.Pointer.Sub(s.Current.Pointer)
	return math32.Hypot(d[0], d[1])
}

// Settled reports whether no axis is further than eps from its target
func (s *State) Settled(eps float32) bool {
	return math32.Abs(s.Target.Pointer[0]-s.Current.Pointer[0]) <= eps &&
		math32.Abs(s.Target.Pointer[1]-s.Current.Pointer[1]) <= eps &&
		math32.Abs(s.Target.Zoom-s.Current.Zoom) <= eps
}
