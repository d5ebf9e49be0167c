package platform

import (
	"fmt"

	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/gpu/gl21"
	"reactive-gradient/internal/gpu/gl41"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Options struct {
	Width, Height int
	Title         string
	// HighDensity asks for a framebuffer in device pixels on displays that
	// scale
	HighDensity bool
	VSync       bool
}

func DefaultOptions() Options {
	return Options{
		Width:       1280,
		Height:      720,
		Title:       "reactive-gradient",
		HighDensity: true,
	}
}

// surfaceHints asks for a transparent RGBA surface without depth or stencil
func surfaceHints(opts Options) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.AlphaBits, 8)
	glfw.WindowHint(glfw.DepthBits, 0)
	glfw.WindowHint(glfw.StencilBits, 0)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, hint(opts.HighDensity))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, hint(opts.HighDensity))
}

func hint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func coreHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
}

func legacyHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
}

func loadCore() (gpu.Context, error) {
	ctx, err := gl41.New()
	if err != nil {
		return nil, err
	}
	log.Debug("GL driver", "version", ctx.Version())
	return ctx, nil
}

func loadLegacy() (gpu.Context, error) {
	ctx, err := gl21.New()
	if err != nil {
		return nil, err
	}
	log.Debug("GL driver", "version", ctx.Version())
	return ctx, nil
}

// candidate creates a window with the given context hints and loads the
// backend into it. On success the window is stored in out.
func candidate(name string, opts Options, hints func(), load func() (gpu.Context, error), out **glfw.Window) gpu.Candidate {
	return gpu.Candidate{
		Name: name,
		Open: func() (gpu.Context, error) {
			surfaceHints(opts)
			hints()
			win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
			if err != nil {
				return nil, err
			}
			win.MakeContextCurrent()

			ctx, err := load()
			if err != nil {
				glfw.DetachCurrentContext()
				win.Destroy()
				return nil, err
			}
			*out = win
			return ctx, nil
		},
	}
}

// Open creates the window with the most capable context available, falling
// back from OpenGL 4.1 core to 2.1. The error wraps gpu.ErrNoContext when
// neither works.
func Open(opts Options) (*Window, gpu.Context, error) {
	var win *glfw.Window
	ctx, err := gpu.Acquire(
		candidate("gl41", opts, coreHints, loadCore, &win),
		candidate("gl21", opts, legacyHints, loadLegacy, &win),
	)
	if err != nil {
		return nil, nil, err
	}

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		// paced by frame.Limiter
		glfw.SwapInterval(0)
	}
	log.Info("window opened", "dialect", ctx.Dialect().Name, "width", opts.Width, "height", opts.Height)
	return newWindow(win, false), ctx, nil
}

// OpenInert creates a window without any client API. It still delivers
// events but never draws, which keeps the program responsive when no GL
// context could be created.
func OpenInert(opts Options) (*Window, error) {
	surfaceHints(opts)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("open inert window: %w", err)
	}
	log.Warn("running without rendering", "title", opts.Title)
	return newWindow(win, true), nil
}
