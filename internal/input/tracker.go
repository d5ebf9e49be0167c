// Package input turns raw pointer, wheel and key events into render targets
// and logical actions.
package input

import (
	"reactive-gradient/internal/config"
	"reactive-gradient/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is the drawing surface's bounding box in the same coordinate space as
// the pointer events delivered against it.
type Rect struct {
	X, Y, W, H float64
}

// Tracker is the only writer of the render target. Handlers report whether
// they changed it so the caller knows when a frame is worth scheduling.
type Tracker struct {
	target  *render.Target
	neutral render.Target

	interactive bool
	reduced     bool
}

// NewTracker takes ownership of writes to target. Its current value becomes
// the neutral state restored by Reset.
func NewTracker(target *render.Target, interactive bool) *Tracker {
	return &Tracker{
		target:      target,
		neutral:     *target,
		interactive: interactive,
	}
}

// SetReducedMotion stops pointer tracking while the preference is set
func (t *Tracker) SetReducedMotion(reduced bool) {
	t.reduced = reduced
}

// HandlePointer maps a pointer position inside box to [0,1]² with Y pointing
// up and stores it as the target pointer.
func (t *Tracker) HandlePointer(x, y float64, box Rect) bool {
	if !t.interactive || t.reduced {
		return false
	}
	if box.W <= 0 || box.H <= 0 {
		return false
	}

	nx := float32((x - box.X) / box.W)
	ny := 1 - float32((y-box.Y)/box.H)
	p := mgl32.Vec2{
		mgl32.Clamp(nx, 0, 1),
		mgl32.Clamp(ny, 0, 1),
	}
	if p == t.target.Pointer {
		return false
	}
	t.target.Pointer = p
	return true
}

// HandleWheel steps the zoom target by one ZoomStep against the scroll
// direction. deltaY is positive when scrolling down.
func (t *Tracker) HandleWheel(deltaY float64) bool {
	if !t.interactive || deltaY == 0 {
		return false
	}

	var sign float32 = 1
	if deltaY < 0 {
		sign = -1
	}
	z := mgl32.Clamp(t.target.Zoom-sign*config.ZoomStep, config.MinZoom, config.MaxZoom)
	if z == t.target.Zoom {
		return false
	}
	t.target.Zoom = z
	return true
}

// Reset restores the neutral target
func (t *Tracker) Reset() bool {
	if *t.target == t.neutral {
		return false
	}
	*t.target = t.neutral
	return true
}
