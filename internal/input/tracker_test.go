package input

import (
	"testing"

	"reactive-gradient/internal/config"
	"reactive-gradient/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

func newTarget() *render.Target {
	s := render.NewState(1)
	return &s.Target
}

func TestWheelZoomStep(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)

	if !tr.HandleWheel(100) {
		t.Fatalf("wheel down should change zoom")
	}
	if !mgl32.FloatEqualThreshold(target.Zoom, 0.96, 1e-6) {
		t.Errorf("zoom = %v, want 0.96", target.Zoom)
	}

	tr.HandleWheel(-3)
	if !mgl32.FloatEqualThreshold(target.Zoom, 1, 1e-6) {
		t.Errorf("zoom = %v, want 1 after scrolling back up", target.Zoom)
	}
}

func TestWheelClampsZoom(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)

	for i := 0; i < 200; i++ {
		tr.HandleWheel(1)
	}
	if target.Zoom != config.MinZoom {
		t.Errorf("zoom = %v, want MinZoom", target.Zoom)
	}
	if tr.HandleWheel(1) {
		t.Errorf("wheel at MinZoom reported a change")
	}

	for i := 0; i < 200; i++ {
		tr.HandleWheel(-1)
	}
	if target.Zoom != config.MaxZoom {
		t.Errorf("zoom = %v, want MaxZoom", target.Zoom)
	}
}

func TestWheelIgnoresZeroDelta(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)
	if tr.HandleWheel(0) || target.Zoom != 1 {
		t.Errorf("zero delta changed zoom to %v", target.Zoom)
	}
}

func TestPointerNormalizesAndFlips(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)
	box := Rect{X: 100, Y: 50, W: 400, H: 200}

	tr.HandlePointer(200, 100, box)
	want := mgl32.Vec2{0.25, 0.75}
	if !target.Pointer.ApproxEqual(want) {
		t.Errorf("pointer = %v, want %v", target.Pointer, want)
	}

	// top left corner of the box is (0, 1)
	tr.HandlePointer(100, 50, box)
	if !target.Pointer.ApproxEqual(mgl32.Vec2{0, 1}) {
		t.Errorf("top left = %v", target.Pointer)
	}
}

func TestPointerClampsOutsideBox(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)
	box := Rect{W: 100, H: 100}

	tr.HandlePointer(-50, 500, box)
	if target.Pointer != (mgl32.Vec2{0, 0}) {
		t.Errorf("pointer = %v, want (0, 0)", target.Pointer)
	}
	tr.HandlePointer(1e6, -1e6, box)
	if target.Pointer != (mgl32.Vec2{1, 1}) {
		t.Errorf("pointer = %v, want (1, 1)", target.Pointer)
	}
}

func TestPointerIgnoresEmptyBox(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)
	if tr.HandlePointer(10, 10, Rect{W: 0, H: 100}) {
		t.Errorf("zero width box accepted")
	}
	if target.Pointer != (mgl32.Vec2{0.5, 0.5}) {
		t.Errorf("pointer moved to %v", target.Pointer)
	}
}

func TestNonInteractiveIgnoresInput(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, false)
	before := *target

	tr.HandlePointer(0, 0, Rect{W: 10, H: 10})
	tr.HandleWheel(100)
	if *target != before {
		t.Errorf("target changed without interactivity: %+v", *target)
	}
}

func TestReducedMotionFreezesPointerOnly(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)
	tr.SetReducedMotion(true)

	if tr.HandlePointer(0, 0, Rect{W: 10, H: 10}) {
		t.Errorf("pointer tracked under reduced motion")
	}
	if !tr.HandleWheel(100) {
		t.Errorf("wheel should still zoom under reduced motion")
	}

	tr.SetReducedMotion(false)
	if !tr.HandlePointer(0, 0, Rect{W: 10, H: 10}) {
		t.Errorf("pointer not tracked after reduced motion was cleared")
	}
}

func TestResetRestoresNeutralTarget(t *testing.T) {
	target := newTarget()
	tr := NewTracker(target, true)

	if tr.Reset() {
		t.Errorf("reset of an untouched target reported a change")
	}
	tr.HandlePointer(0, 0, Rect{W: 10, H: 10})
	tr.HandleWheel(-1)
	if !tr.Reset() {
		t.Fatalf("reset reported no change")
	}
	if target.Pointer != (mgl32.Vec2{0.5, 0.5}) || target.Zoom != 1 {
		t.Errorf("target after reset = %+v", *target)
	}
}
