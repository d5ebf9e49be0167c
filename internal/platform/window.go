// Package platform hosts the background in a GLFW window.
package platform

import (
	"reactive-gradient/internal/background"
	"reactive-gradient/internal/input"
	"reactive-gradient/internal/render"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	_ background.Host           = (*Window)(nil)
	_ render.FramebufferSurface = (*Window)(nil)
)

// Window adapts a GLFW window to background.Host. All methods must be
// called on the main thread.
type Window struct {
	win   *glfw.Window
	inert bool

	reduced bool
	visible bool

	resize     background.Listeners[func()]
	pointer    background.Listeners[func(x, y float64, box input.Rect)]
	wheel      background.Listeners[func(deltaY float64)]
	visibility background.Listeners[func(visible bool)]
	motion     background.Listeners[func(reduced bool)]
	keys       background.Listeners[func(key input.Key, action int)]
}

func newWindow(win *glfw.Window, inert bool) *Window {
	w := &Window{win: win, inert: inert, visible: true}
	w.installCallbacks()
	return w
}

func (w *Window) installCallbacks() {
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		box := w.localBox()
		w.pointer.Each(func(fn func(float64, float64, input.Rect)) { fn(x, y, box) })
	})

	// glfw reports scrolling up as positive, wheel listeners expect the
	// opposite
	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.wheel.Each(func(fn func(float64)) { fn(-yoff) })
	})

	w.win.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		w.setVisible(!iconified)
	})

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		w.fireResize()
	})
	w.win.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		w.fireResize()
	})
	// NOTE: exposure on some platforms only arrives as a refresh
	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		w.fireResize()
	})

	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.keys.Each(func(fn func(input.Key, int)) { fn(input.Key(key), int(action)) })
	})
}

func (w *Window) fireResize() {
	w.resize.Each(func(fn func()) { fn() })
}

func (w *Window) setVisible(visible bool) {
	if w.visible == visible {
		return
	}
	w.visible = visible
	w.visibility.Each(func(fn func(bool)) { fn(visible) })
}

// LayoutSize is the window size in screen coordinates
func (w *Window) LayoutSize() (float64, float64) {
	width, height := w.win.GetSize()
	return float64(width), float64(height)
}

// DevicePixelRatio is framebuffer pixels per screen coordinate. It falls
// back to the monitor content scale while the window has no area.
func (w *Window) DevicePixelRatio() float64 {
	fw, _ := w.win.GetFramebufferSize()
	width, _ := w.win.GetSize()
	if fw > 0 && width > 0 {
		return float64(fw) / float64(width)
	}
	sx, _ := w.win.GetContentScale()
	if sx > 0 {
		return float64(sx)
	}
	return 1
}

// FramebufferSize is the drawable size in pixels. Wayland compositors
// scale it by the output's buffer scale regardless of the density hints.
func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) localBox() input.Rect {
	width, height := w.win.GetSize()
	return input.Rect{W: float64(width), H: float64(height)}
}

// ScreenBox is the window's client area in virtual screen coordinates
func (w *Window) ScreenBox() input.Rect {
	x, y := w.win.GetPos()
	width, height := w.win.GetSize()
	return input.Rect{X: float64(x), Y: float64(y), W: float64(width), H: float64(height)}
}

func (w *Window) OnResize(fn func()) func() { return w.resize.Add(fn) }

func (w *Window) OnPointerMove(fn func(x, y float64, box input.Rect)) func() {
	return w.pointer.Add(fn)
}

func (w *Window) OnWheel(fn func(deltaY float64)) func() { return w.wheel.Add(fn) }

func (w *Window) OnVisibility(fn func(visible bool)) func() { return w.visibility.Add(fn) }

func (w *Window) OnReducedMotion(fn func(reduced bool)) func() { return w.motion.Add(fn) }

// OnKey forwards key events with GLFW's key and action numbering
func (w *Window) OnKey(fn func(key input.Key, action int)) func() { return w.keys.Add(fn) }

func (w *Window) ReducedMotion() bool { return w.reduced }

func (w *Window) Visible() bool { return w.visible }

// SetReducedMotion changes the preference and notifies listeners
func (w *Window) SetReducedMotion(reduced bool) {
	if w.reduced == reduced {
		return
	}
	w.reduced = reduced
	w.motion.Each(func(fn func(bool)) { fn(reduced) })
}

// FeedGlobalPointer delivers a pointer position in virtual screen
// coordinates, as read from the window system rather than from this window.
func (w *Window) FeedGlobalPointer(x, y float64) {
	box := w.ScreenBox()
	w.pointer.Each(func(fn func(float64, float64, input.Rect)) { fn(x, y, box) })
}

// Inert reports whether the window has no GL context
func (w *Window) Inert() bool { return w.inert }

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

func (w *Window) RequestClose() { w.win.SetShouldClose(true) }

func (w *Window) SwapBuffers() {
	if w.inert {
		return
	}
	w.win.SwapBuffers()
}

func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
}
