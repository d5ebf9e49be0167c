// Package render drives the gradient: it eases the view toward its input
// targets, keeps the viewport in step with the surface and issues one draw
// per scheduled frame.
package render

import (
	"math"
	"time"

	"reactive-gradient/internal/config"
	"reactive-gradient/internal/frame"
	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/profiling"
	"reactive-gradient/internal/shader"
	"reactive-gradient/internal/uniform"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// Phase is the loop's scheduling state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScheduled
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScheduled:
		return "scheduled"
	case PhaseRunning:
		return "running"
	}
	return "unknown"
}

// Scheduler hands out per-frame callbacks. *frame.Scheduler implements it.
type Scheduler interface {
	Request(cb func(now time.Time)) frame.Token
	Cancel(t frame.Token)
}

// Surface reports the layout size of the drawing area and the ratio between
// layout units and device pixels.
type Surface interface {
	LayoutSize() (width, height float64)
	DevicePixelRatio() float64
}

// FramebufferSurface is a Surface whose drawable has a size fixed by the
// window system. The viewport always covers it, whatever the density
// setting asks for.
type FramebufferSurface interface {
	Surface
	FramebufferSize() (width, height int)
}

// MaxTimeStep bounds how far the animation clock advances between two drawn
// frames, so a frame after an idle or hidden stretch continues smoothly.
const MaxTimeStep = time.Second / 30

type Options struct {
	// HighDensity sizes the backing store in device pixels. When false the
	// device pixel ratio is treated as 1.
	HighDensity bool
	// Drift keeps frames coming after the view has settled so the noise
	// animates over time.
	Drift bool
	// Epsilon is the per-axis distance below which the view counts as
	// settled. Zero means Epsilon.
	Epsilon float32
}

// Loop owns the current half of State and every frame executed against the
// resources. All methods must be called from the thread that owns ctx.
type Loop struct {
	ctx     gpu.Context
	res     *Resources
	sched   Scheduler
	surface Surface
	params  config.GradientParameters
	opts    Options

	state State

	phase   Phase
	token   frame.Token
	visible bool
	reduced bool
	stopped bool

	width, height int32
	frames        uint64

	// animation clock, advanced only while frames are drawn
	clock    time.Duration
	lastDraw time.Time

	dynamic uniform.Values
}

// NewLoop creates an idle, visible loop. Nothing is scheduled until
// ScheduleFrame.
func NewLoop(ctx gpu.Context, res *Resources, sched Scheduler, surface Surface, params config.GradientParameters, opts Options) *Loop {
	if opts.Epsilon <= 0 {
		opts.Epsilon = Epsilon
	}
	return &Loop{
		ctx:     ctx,
		res:     res,
		sched:   sched,
		surface: surface,
		params:  params,
		opts:    opts,
		state:   NewState(params.Zoom),
		visible: true,
		dynamic: make(uniform.Values, 4),
	}
}

// Clock returns the animation time pushed with the last frame
func (l *Loop) Clock() time.Duration { return l.clock }

// Target exposes the target half of the state to its single writer
func (l *Loop) Target() *Target { return &l.state.Target }

// State returns a copy of the current and target values
func (l *Loop) State() State { return l.state }

func (l *Loop) Phase() Phase { return l.phase }

// Frames returns the number of frames drawn so far
func (l *Loop) Frames() uint64 { return l.frames }

// Size returns the backing store size used by the last frame
func (l *Loop) Size() (width, height int32) { return l.width, l.height }

func (l *Loop) Visible() bool { return l.visible }

// EaseFactor returns the per-frame interpolation weight in effect
func (l *Loop) EaseFactor() float32 {
	if l.reduced {
		return ReducedEaseFactor
	}
	return EaseFactor
}

// ScheduleFrame requests a frame unless one is already pending, the surface
// is hidden, or the loop was stopped. Bursts of triggers collapse into one
// frame. The animation clock resumes from where the last frame left it.
func (l *Loop) ScheduleFrame() {
	if l.request() {
		l.lastDraw = time.Time{}
	}
}

func (l *Loop) request() bool {
	if l.stopped || !l.visible || l.phase != PhaseIdle {
		return false
	}
	l.token = l.sched.Request(l.runFrame)
	l.phase = PhaseScheduled
	return true
}

// SetVisible pauses the loop while hidden. Becoming visible schedules one
// frame.
func (l *Loop) SetVisible(visible bool) {
	if l.stopped {
		return
	}
	if !visible {
		l.cancel()
		l.visible = false
		return
	}
	l.visible = true
	l.ScheduleFrame()
}

// SetReducedMotion switches to the calmer ease factor and time scale
func (l *Loop) SetReducedMotion(reduced bool) {
	if l.reduced == reduced {
		return
	}
	l.reduced = reduced
	l.ScheduleFrame()
}

// Stop cancels any pending frame and detaches the loop from its resources.
// A stopped loop never touches the context again.
func (l *Loop) Stop() {
	l.cancel()
	l.stopped = true
	l.res = nil
}

func (l *Loop) cancel() {
	if l.phase == PhaseScheduled {
		l.sched.Cancel(l.token)
	}
	l.token = 0
	if l.phase != PhaseRunning {
		l.phase = PhaseIdle
	}
}

func (l *Loop) runFrame(now time.Time) {
	l.token = 0
	l.phase = PhaseIdle
	if l.stopped || l.res == nil || !l.visible {
		return
	}
	defer profiling.Track("render.Frame")()

	l.phase = PhaseRunning
	l.advanceClock(now)

	l.ctx.UseProgram(l.res.Program)
	if l.frames == 0 {
		uniform.Push(l.ctx, l.res.Uniforms, ParameterValues(l.params))
	}
	l.resize()
	l.ctx.Clear()

	l.state.Step(l.EaseFactor())
	l.pushDynamic()

	l.ctx.BindVertexBuffer(l.res.Buffer)
	l.ctx.DrawTriangles(0, 3)
	l.frames++

	l.phase = PhaseIdle
	if l.opts.Drift || !l.state.Settled(l.opts.Epsilon) {
		l.request()
	}
}

func (l *Loop) advanceClock(now time.Time) {
	if !l.lastDraw.IsZero() {
		l.clock += min(max(now.Sub(l.lastDraw), 0), MaxTimeStep)
	}
	l.lastDraw = now
}

// resize recomputes the backing store size and updates the viewport and the
// resolution uniform when it changed.
func (l *Loop) resize() {
	dpr := 1.0
	if l.opts.HighDensity {
		dpr = l.surface.DevicePixelRatio()
	}
	lw, lh := l.surface.LayoutSize()
	w, h := BackingSize(lw, dpr), BackingSize(lh, dpr)
	if fs, ok := l.surface.(FramebufferSurface); ok {
		if fw, fh := fs.FramebufferSize(); fw > 0 && fh > 0 {
			w, h = int32(fw), int32(fh)
		}
	}
	if w == l.width && h == l.height {
		return
	}
	l.width, l.height = w, h

	l.ctx.Viewport(0, 0, w, h)
	uniform.Push(l.ctx, l.res.Uniforms, uniform.Values{
		shader.UniformResolution: uniform.Vec2(mgl32.Vec2{float32(w), float32(h)}),
	})
	log.Debug("backing store resized", "width", w, "height", h, "dpr", dpr)
}

func (l *Loop) pushDynamic() {
	reduced := float32(0)
	if l.reduced {
		reduced = 1
	}
	l.dynamic[shader.UniformTime] = uniform.Float(float32(l.clock.Seconds()))
	l.dynamic[shader.UniformPointer] = uniform.Vec2(l.state.Current.Pointer)
	l.dynamic[shader.UniformZoom] = uniform.Float(l.state.Current.Zoom)
	l.dynamic[shader.UniformReduced] = uniform.Float(reduced)
	uniform.Push(l.ctx, l.res.Uniforms, l.dynamic)
}

// ParameterValues are the uniforms that stay fixed for a session. Uniform
// values live in the program object, so they are pushed once.
func ParameterValues(p config.GradientParameters) uniform.Values {
	return uniform.Values{
		shader.UniformColorBase:      uniform.Vec3(p.Colors[config.ColorBase]),
		shader.UniformColorPrimary:   uniform.Vec3(p.Colors[config.ColorPrimary]),
		shader.UniformColorAccent:    uniform.Vec3(p.Colors[config.ColorAccent]),
		shader.UniformNoiseScale:     uniform.Float(p.NoiseScale),
		shader.UniformNoiseIntensity: uniform.Float(p.NoiseIntensity),
		shader.UniformDisplacement:   uniform.Float(p.Displacement),
		shader.UniformSpacing:        uniform.Float(p.Spacing),
		shader.UniformRotation:       uniform.Float(p.Rotation),
		shader.UniformSeed:           uniform.Float(p.Seed),
		shader.UniformOffset:         uniform.Vec2(p.Offset),
	}
}

// BackingSize converts a layout length to device pixels, never below 1
func BackingSize(layout, dpr float64) int32 {
	if !(dpr > 0) {
		dpr = 1
	}
	v := math.Floor(layout * dpr)
	if !(v >= 1) {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
