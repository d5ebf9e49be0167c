// Package app runs the event pump that drives a mounted background.
package app

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"reactive-gradient/internal/background"
	"reactive-gradient/internal/config"
	"reactive-gradient/internal/frame"
	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/input"
	"reactive-gradient/internal/input/x11"
	"reactive-gradient/internal/platform"
	"reactive-gradient/internal/profiling"
	"reactive-gradient/internal/snapshot"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Options struct {
	// GlobalPointer follows the X11 pointer instead of window events
	GlobalPointer   bool
	PointerInterval time.Duration

	// SnapshotPath, when set, saves the first drawn frame there and quits
	SnapshotPath string
	// SnapshotDir receives snapshots taken with the snapshot key
	SnapshotDir   string
	SnapshotWidth int
}

// App owns the window and the mounted background. Run must be called from
// the main thread.
type App struct {
	window       *platform.Window
	ctx          gpu.Context
	bg           *background.Background
	sched        *frame.Scheduler
	limiter      *frame.Limiter
	inputManager *input.InputManager
	opts         Options

	pointer      *x11.PointerSource
	lastX, lastY int

	snapshotRequested bool
	detachKeys        func()

	quit atomic.Bool
	done chan struct{}
}

// New wires the app around a window. bg and ctx are nil for an inert window.
func New(window *platform.Window, ctx gpu.Context, bg *background.Background, sched *frame.Scheduler, opts Options) *App {
	if opts.PointerInterval <= 0 {
		opts.PointerInterval = 16 * time.Millisecond
	}
	a := &App{
		window:       window,
		ctx:          ctx,
		bg:           bg,
		sched:        sched,
		limiter:      frame.NewLimiter(),
		inputManager: NewInputManager(),
		opts:         opts,
		done:         make(chan struct{}),
	}
	a.detachKeys = window.OnKey(a.inputManager.HandleKeyEvent)

	if opts.GlobalPointer && bg != nil {
		src, err := x11.Connect()
		if err != nil {
			log.Warn("global pointer unavailable, using window events", "err", err)
		} else {
			a.pointer = src
		}
	}
	return a
}

// NewInputManager binds the default keys
func NewInputManager() *input.InputManager {
	im := input.NewInputManager()
	im.BindKey(input.Key(glfw.KeyEscape), input.ActionQuit)
	im.BindKey(input.Key(glfw.KeyQ), input.ActionQuit)
	im.BindKey(input.Key(glfw.KeyR), input.ActionToggleReducedMotion)
	im.BindKey(input.Key(glfw.Key0), input.ActionResetView)
	im.BindKey(input.Key(glfw.KeyKP0), input.ActionResetView)
	im.BindKey(input.Key(glfw.KeyS), input.ActionSnapshot)
	im.BindKey(input.Key(glfw.KeyF12), input.ActionSnapshot)
	im.BindKey(input.Key(glfw.KeyV), input.ActionToggleProfiling)
	return im
}

// RequestQuit may be called from any goroutine
func (a *App) RequestQuit() {
	a.quit.Store(true)
	glfw.PostEmptyEvent()
}

// Done is closed once Run has torn everything down
func (a *App) Done() <-chan struct{} { return a.done }

func (a *App) Run() {
	defer a.shutdown()
	for !a.window.ShouldClose() && !a.quit.Load() {
		a.tick()
	}
}

func (a *App) tick() {
	if a.sched.Pending() > 0 {
		glfw.PollEvents()
	} else {
		a.waitEvents()
	}

	a.pollGlobalPointer()
	a.handleActions()
	a.inputManager.PostUpdate()

	if a.sched.Pending() > 0 {
		a.drawFrame()
	}
}

// waitEvents blocks while nothing is scheduled. With a global pointer source
// it wakes up periodically to sample the pointer.
func (a *App) waitEvents() {
	a.limiter.Reset()
	if a.pointer != nil {
		glfw.WaitEventsTimeout(a.opts.PointerInterval.Seconds())
		return
	}
	glfw.WaitEvents()
}

func (a *App) pollGlobalPointer() {
	if a.pointer == nil {
		return
	}
	x, y, err := a.pointer.Position()
	if err != nil {
		log.Warn("global pointer lost, falling back to window events", "err", err)
		a.pointer.Close()
		a.pointer = nil
		return
	}
	if x == a.lastX && y == a.lastY {
		return
	}
	a.lastX, a.lastY = x, y
	a.window.FeedGlobalPointer(float64(x), float64(y))
}

func (a *App) handleActions() {
	im := a.inputManager
	if im.JustPressed(input.ActionQuit) {
		a.window.RequestClose()
	}
	if a.bg == nil {
		return
	}
	if im.JustPressed(input.ActionToggleReducedMotion) {
		reduced := !a.window.ReducedMotion()
		a.window.SetReducedMotion(reduced)
		log.Info("reduced motion", "enabled", reduced)
	}
	if im.JustPressed(input.ActionResetView) {
		a.bg.ResetView()
	}
	if im.JustPressed(input.ActionSnapshot) {
		a.snapshotRequested = true
		a.bg.Invalidate()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		if profiling.Enabled() {
			log.Info("profiling off", "summary", profiling.Stats())
			profiling.SetEnabled(false)
		} else {
			profiling.SetEnabled(true)
			log.Info("profiling on")
		}
	}
}

func (a *App) drawFrame() {
	profiling.BeginFrame()
	start := time.Now()

	drawn := a.bg.Loop().Frames()
	a.sched.RunFrame(start)
	if a.bg.Loop().Frames() == drawn {
		return
	}

	a.takeSnapshot()
	stop := profiling.Track("app.Swap")
	a.window.SwapBuffers()
	stop()

	d := time.Since(start)
	profiling.EndFrame(d)
	if d > time.Duration(config.GetSlowFrameMS())*time.Millisecond {
		log.Warn("slow frame", "took", d, "top", profiling.TopN(5))
	}
	a.limiter.Wait()
}

func (a *App) takeSnapshot() {
	path := ""
	switch {
	case a.opts.SnapshotPath != "":
		path = a.opts.SnapshotPath
	case a.snapshotRequested:
		path = filepath.Join(a.opts.SnapshotDir, fmt.Sprintf("gradient-%s.png", time.Now().Format("20060102-150405")))
	default:
		return
	}
	a.snapshotRequested = false

	defer profiling.Track("app.Snapshot")()
	w, h := a.bg.Loop().Size()
	img, err := snapshot.Capture(a.ctx, w, h)
	if err == nil {
		err = snapshot.Write(path, img, a.opts.SnapshotWidth)
	}
	if err != nil {
		log.Error("snapshot failed", "path", path, "err", err)
	}
	if a.opts.SnapshotPath != "" {
		a.window.RequestClose()
	}
}

func (a *App) shutdown() {
	if profiling.Enabled() {
		log.Debug("frame stats", "summary", profiling.Stats())
	}
	if a.bg != nil {
		a.bg.Close()
	}
	if a.pointer != nil {
		a.pointer.Close()
		a.pointer = nil
	}
	a.detachKeys()
	a.window.Destroy()
	close(a.done)
}
