package background

import (
	"errors"
	"testing"
	"time"

	"reactive-gradient/internal/frame"
	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/gpu/gputest"
	"reactive-gradient/internal/input"
	"reactive-gradient/internal/shader"
)

// fakeHost keeps every registered listener so tests can fire events, and
// records the order listeners are detached in.
type fakeHost struct {
	w, h, dpr float64
	reduced   bool
	hidden    bool

	resize     []func()
	pointer    []func(x, y float64, box input.Rect)
	wheel      []func(deltaY float64)
	visibility []func(bool)
	motion     []func(bool)

	registered int
	detached   []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{w: 640, h: 480, dpr: 1}
}

func (h *fakeHost) LayoutSize() (float64, float64) { return h.w, h.h }
func (h *fakeHost) DevicePixelRatio() float64     { return h.dpr }
func (h *fakeHost) ReducedMotion() bool           { return h.reduced }
func (h *fakeHost) Visible() bool                 { return !h.hidden }

func (h *fakeHost) detacher(name string) func() {
	h.registered++
	return func() { h.detached = append(h.detached, name) }
}

func (h *fakeHost) OnResize(fn func()) func() {
	h.resize = append(h.resize, fn)
	return h.detacher("resize")
}

func (h *fakeHost) OnPointerMove(fn func(x, y float64, box input.Rect)) func() {
	h.pointer = append(h.pointer, fn)
	return h.detacher("pointer")
}

func (h *fakeHost) OnWheel(fn func(deltaY float64)) func() {
	h.wheel = append(h.wheel, fn)
	return h.detacher("wheel")
}

func (h *fakeHost) OnVisibility(fn func(bool)) func() {
	h.visibility = append(h.visibility, fn)
	return h.detacher("visibility")
}

func (h *fakeHost) OnReducedMotion(fn func(bool)) func() {
	h.motion = append(h.motion, fn)
	return h.detacher("reducedMotion")
}

func (h *fakeHost) box() input.Rect { return input.Rect{W: h.w, H: h.h} }

type fixture struct {
	ctx   *gputest.Context
	host  *fakeHost
	sched *frame.Scheduler
	bg    *Background
	now   time.Time
}

func mount(t *testing.T, host *fakeHost, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   gputest.New(),
		host:  host,
		sched: frame.NewScheduler(),
		now:   time.Unix(0, 0),
	}
	bg, err := Mount(f.ctx, host, f.sched, opts)
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	f.bg = bg
	return f
}

func (f *fixture) tick() int {
	f.now = f.now.Add(16 * time.Millisecond)
	return f.sched.RunFrame(f.now)
}

func TestMountSchedulesFirstFrame(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	if f.sched.Pending() != 1 {
		t.Fatalf("expected the first frame to be scheduled")
	}
	f.tick()
	if f.ctx.Count("DrawTriangles") != 1 {
		t.Errorf("first frame did not draw")
	}
	if f.host.registered != 5 {
		t.Errorf("registered %d listeners, want 5", f.host.registered)
	}
}

func TestPointerBurstCoalesces(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	f.tick()
	f.ctx.Reset()

	for i := 0; i < 10; i++ {
		f.host.pointer[0](float64(10*i), 20, f.host.box())
	}
	if n := f.sched.Pending(); n != 1 {
		t.Fatalf("pending = %d, want 1", n)
	}
	f.tick()
	if n := f.ctx.Count("DrawTriangles"); n != 1 {
		t.Errorf("draws = %d, want 1", n)
	}
}

func TestWheelZoomsTarget(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	f.host.wheel[0](100)

	z := f.bg.Loop().Target().Zoom
	if z < 0.959 || z > 0.961 {
		t.Errorf("target zoom = %v, want 0.96", z)
	}
}

func TestVisibilityPausesFrames(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	f.host.pointer[0](600, 20, f.host.box())
	f.tick()

	f.host.visibility[0](false)
	drawn := f.bg.Loop().Frames()
	for i := 0; i < 5; i++ {
		f.host.pointer[0](float64(i), float64(i), f.host.box())
		f.tick()
	}
	if f.bg.Loop().Frames() != drawn {
		t.Errorf("frames drawn while hidden")
	}

	f.host.visibility[0](true)
	if f.sched.Pending() != 1 {
		t.Errorf("becoming visible should schedule exactly one frame, got %d", f.sched.Pending())
	}
}

func TestMountHiddenWaitsForVisibility(t *testing.T) {
	host := newFakeHost()
	host.hidden = true
	f := mount(t, host, DefaultOptions())

	if f.sched.Pending() != 0 {
		t.Errorf("hidden mount scheduled a frame")
	}
	host.visibility[0](true)
	if f.sched.Pending() != 1 {
		t.Errorf("expected a frame once visible")
	}
}

func TestReducedMotionFromHost(t *testing.T) {
	host := newFakeHost()
	host.reduced = true
	f := mount(t, host, DefaultOptions())

	before := f.bg.Loop().Target().Pointer
	host.pointer[0](0, 0, host.box())
	if f.bg.Loop().Target().Pointer != before {
		t.Errorf("pointer tracked under reduced motion")
	}

	host.motion[0](false)
	host.pointer[0](0, 0, host.box())
	if f.bg.Loop().Target().Pointer == before {
		t.Errorf("pointer ignored after reduced motion was cleared")
	}
}

func TestCloseReleasesInOrder(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	f.tick()
	f.ctx.Reset()

	f.bg.Close()

	buf, prog := -1, -1
	for i, c := range f.ctx.Calls {
		switch c.Name {
		case "DeleteVertexBuffer":
			buf = i
		case "DeleteProgram":
			prog = i
		}
	}
	if buf < 0 || prog < 0 || buf > prog {
		t.Errorf("buffer must be deleted before the program: %v", f.ctx.Calls)
	}

	want := []string{"reducedMotion", "visibility", "wheel", "pointer", "resize"}
	if len(f.host.detached) != len(want) {
		t.Fatalf("detached %v, want %v", f.host.detached, want)
	}
	for i := range want {
		if f.host.detached[i] != want[i] {
			t.Errorf("detach order %v, want %v", f.host.detached, want)
			break
		}
	}
}

func TestCloseIsIdempotentAndInert(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	f.host.pointer[0](10, 10, f.host.box())

	f.bg.Close()
	f.bg.Close()
	if n := f.ctx.Count("DeleteProgram"); n != 1 {
		t.Errorf("program deleted %d times", n)
	}
	if len(f.host.detached) != 5 {
		t.Errorf("listeners detached %d times", len(f.host.detached))
	}

	// listeners captured before teardown must not reach the context
	f.ctx.Reset()
	f.host.resize[0]()
	f.host.pointer[0](300, 300, f.host.box())
	f.host.wheel[0](-100)
	f.host.visibility[0](true)
	f.host.motion[0](true)
	f.bg.Invalidate()
	f.bg.ResetView()
	f.tick()

	if len(f.ctx.Calls) != 0 {
		t.Errorf("context used after Close: %v", f.ctx.Calls)
	}
	if f.sched.Pending() != 0 {
		t.Errorf("frames pending after Close")
	}
}

func TestMountFailureReleasesEverything(t *testing.T) {
	ctx := gputest.New()
	ctx.CompileErrors = map[gpu.Stage]string{gpu.StageFragment: "0:12: syntax error"}
	host := newFakeHost()

	bg, err := Mount(ctx, host, frame.NewScheduler(), DefaultOptions())
	if err == nil {
		bg.Close()
		t.Fatalf("Mount succeeded with a broken shader")
	}
	var ce *shader.CompileError
	if !errors.As(err, &ce) || ce.Stage != gpu.StageFragment {
		t.Errorf("err = %v, want a fragment CompileError", err)
	}
	if host.registered != 0 {
		t.Errorf("listeners registered on failed mount")
	}
	for _, c := range ctx.Find("CreateShader") {
		if id := c.Args[0].(uint32); !ctx.Deleted(id) {
			t.Errorf("shader %d leaked", id)
		}
	}
	if ctx.Count("NewVertexBuffer") != 0 {
		t.Errorf("buffer created on failed mount")
	}
}

func TestResetViewSchedulesFrame(t *testing.T) {
	f := mount(t, newFakeHost(), DefaultOptions())
	f.tick()
	f.host.wheel[0](-100)
	for f.sched.Pending() > 0 {
		f.tick()
	}

	f.bg.ResetView()
	if f.sched.Pending() != 1 {
		t.Errorf("reset view should schedule a frame")
	}
	if z := f.bg.Loop().Target().Zoom; z != 1 {
		t.Errorf("target zoom after reset = %v", z)
	}
}
