// Package background mounts the interactive gradient onto a host surface and
// tears it down again.
package background

import (
	"fmt"

	"reactive-gradient/internal/config"
	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/input"
	"reactive-gradient/internal/render"

	"github.com/charmbracelet/log"
)

// Host is the surface the background is mounted on. Every On method returns
// a function that detaches the listener again.
type Host interface {
	render.Surface

	OnResize(fn func()) (detach func())
	OnPointerMove(fn func(x, y float64, box input.Rect)) (detach func())
	OnWheel(fn func(deltaY float64)) (detach func())
	OnVisibility(fn func(visible bool)) (detach func())
	OnReducedMotion(fn func(reduced bool)) (detach func())

	ReducedMotion() bool
	Visible() bool
}

type Options struct {
	// Interactive enables pointer tracking and wheel zoom
	Interactive bool
	// HighDensity renders at device pixel resolution
	HighDensity bool
	// Drift keeps animating after the view settles
	Drift  bool
	Params config.GradientParameters
}

// DefaultOptions is an interactive, high density background with the
// built-in parameters.
func DefaultOptions() Options {
	return Options{
		Interactive: true,
		HighDensity: true,
		Params:      config.DefaultParameters(),
	}
}

// Background is one mounted render session
type Background struct {
	ctx     gpu.Context
	res     *render.Resources
	loop    *render.Loop
	tracker *input.Tracker

	detach []func()
	closed bool
}

// Mount builds the GL resources on ctx, registers host listeners and
// schedules the first frame. On error nothing stays allocated or registered.
func Mount(ctx gpu.Context, host Host, sched render.Scheduler, opts Options) (*Background, error) {
	res, err := render.NewResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("mount background: %w", err)
	}

	loop := render.NewLoop(ctx, res, sched, host, opts.Params, render.Options{
		HighDensity: opts.HighDensity,
		Drift:       opts.Drift,
	})
	b := &Background{
		ctx:     ctx,
		res:     res,
		loop:    loop,
		tracker: input.NewTracker(loop.Target(), opts.Interactive),
	}

	reduced := host.ReducedMotion()
	b.tracker.SetReducedMotion(reduced)
	loop.SetReducedMotion(reduced)
	if !host.Visible() {
		loop.SetVisible(false)
	}

	b.listen(host.OnResize(b.handleResize))
	b.listen(host.OnPointerMove(b.handlePointer))
	b.listen(host.OnWheel(b.handleWheel))
	b.listen(host.OnVisibility(b.handleVisibility))
	b.listen(host.OnReducedMotion(b.SetReducedMotion))

	loop.ScheduleFrame()
	log.Debug("background mounted",
		"dialect", ctx.Dialect().Name,
		"interactive", opts.Interactive,
		"reducedMotion", reduced,
	)
	return b, nil
}

func (b *Background) listen(detach func()) {
	if detach != nil {
		b.detach = append(b.detach, detach)
	}
}

// Close stops the loop, detaches listeners in reverse order and releases the
// GL objects. Later calls do nothing.
func (b *Background) Close() {
	if b.closed {
		return
	}
	b.closed = true

	b.loop.Stop()
	for i := len(b.detach) - 1; i >= 0; i-- {
		b.detach[i]()
	}
	b.detach = nil
	b.res.Release(b.ctx)
	log.Debug("background closed", "frames", b.loop.Frames())
}

func (b *Background) Closed() bool { return b.closed }

// Loop exposes the render loop for inspection
func (b *Background) Loop() *render.Loop { return b.loop }

// Invalidate asks for a redraw, e.g. after the window was exposed
func (b *Background) Invalidate() {
	if b.closed {
		return
	}
	b.loop.ScheduleFrame()
}

// ResetView eases the pointer back to the center and the zoom to its base
func (b *Background) ResetView() {
	if b.closed {
		return
	}
	if b.tracker.Reset() {
		b.loop.ScheduleFrame()
	}
}

// SetReducedMotion applies a reduced motion preference change
func (b *Background) SetReducedMotion(reduced bool) {
	if b.closed {
		return
	}
	b.tracker.SetReducedMotion(reduced)
	b.loop.SetReducedMotion(reduced)
}

func (b *Background) handleResize() {
	if b.closed {
		return
	}
	b.loop.ScheduleFrame()
}

func (b *Background) handlePointer(x, y float64, box input.Rect) {
	if b.closed {
		return
	}
	if b.tracker.HandlePointer(x, y, box) {
		b.loop.ScheduleFrame()
	}
}

func (b *Background) handleWheel(deltaY float64) {
	if b.closed {
		return
	}
	if b.tracker.HandleWheel(deltaY) {
		b.loop.ScheduleFrame()
	}
}

func (b *Background) handleVisibility(visible bool) {
	if b.closed {
		return
	}
	b.loop.SetVisible(visible)
}
