package main

import (
	"errors"
	"flag"
	"runtime"
	"time"

	"reactive-gradient/internal/app"
	"reactive-gradient/internal/background"
	"reactive-gradient/internal/config"
	"reactive-gradient/internal/frame"
	"reactive-gradient/internal/gpu"
	"reactive-gradient/internal/platform"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

type flags struct {
	interactive   bool
	reducedMotion bool
	noHiDPI       bool
	drift         bool
	params        string
	fps           int
	width, height int
	title         string
	globalPointer bool
	snapshot      string
	snapshotDir   string
	snapshotWidth int
	debug         bool
}

func parseFlags() flags {
	var f flags
	flag.BoolVar(&f.interactive, "interactive", true, "follow the pointer and zoom with the wheel")
	flag.BoolVar(&f.reducedMotion, "reduced-motion", false, "start with reduced motion (R toggles it)")
	flag.BoolVar(&f.noHiDPI, "no-hidpi", false, "render at layout resolution on high density displays")
	flag.BoolVar(&f.drift, "drift", false, "keep the noise animating after the view settles")
	flag.StringVar(&f.params, "params", "", "JSON file with gradient parameter overrides")
	flag.IntVar(&f.fps, "fps", 60, "frame rate cap, 0 for none")
	flag.IntVar(&f.width, "width", 1280, "window width")
	flag.IntVar(&f.height, "height", 720, "window height")
	flag.StringVar(&f.title, "title", "reactive-gradient", "window title")
	flag.BoolVar(&f.globalPointer, "global-pointer", false, "track the X11 pointer even when it is over other windows")
	flag.StringVar(&f.snapshot, "snapshot", "", "render one frame to this PNG file and exit")
	flag.StringVar(&f.snapshotDir, "snapshot-dir", ".", "directory for snapshots taken with S")
	flag.IntVar(&f.snapshotWidth, "snapshot-width", 0, "scale snapshots down to this width, 0 keeps the frame size")
	flag.BoolVar(&f.debug, "debug", false, "verbose logging")
	flag.Parse()
	return f
}

func main() {
	// closer runs the bound cleanup before exiting with run's code
	closer.Exit(run(parseFlags()))
}

// run returns the process exit code. Once GLFW is up every path returns
// through the deferred terminate.
func run(f flags) int {
	if f.debug {
		log.SetLevel(log.DebugLevel)
	}
	log.SetReportTimestamp(true)
	config.SetFPSLimit(f.fps)

	params, err := loadParameters(f.params)
	if err != nil {
		log.Error("invalid gradient parameters", "path", f.params, "err", err)
		return 2
	}

	if err := glfw.Init(); err != nil {
		log.Error("failed to initialize GLFW", "err", err)
		return 1
	}
	terminated := make(chan struct{})
	defer func() {
		glfw.Terminate()
		close(terminated)
	}()

	winOpts := platform.Options{
		Width:       f.width,
		Height:      f.height,
		Title:       f.title,
		HighDensity: !f.noHiDPI,
	}

	var (
		bg    *background.Background
		sched = frame.NewScheduler()
	)
	window, ctx, err := platform.Open(winOpts)
	if err != nil {
		if !errors.Is(err, gpu.ErrNoContext) {
			log.Error("failed to open window", "err", err)
			return 1
		}
		log.Error("no drawing context, the background stays blank", "err", err)
		window, err = platform.OpenInert(winOpts)
		if err != nil {
			log.Error("failed to open window", "err", err)
			return 1
		}
		ctx = nil
	}
	window.SetReducedMotion(f.reducedMotion)

	if ctx != nil {
		bg, err = background.Mount(ctx, window, sched, background.Options{
			Interactive: f.interactive,
			HighDensity: !f.noHiDPI,
			Drift:       f.drift,
			Params:      params,
		})
		if err != nil {
			// render nothing rather than fail
			log.Error("background unavailable", "err", err)
			bg = nil
		}
	}
	if bg == nil && f.snapshot != "" {
		log.Error("cannot take a snapshot without rendering")
		window.Destroy()
		return 1
	}

	a := app.New(window, ctx, bg, sched, app.Options{
		GlobalPointer: f.globalPointer,
		SnapshotPath:  f.snapshot,
		SnapshotDir:   f.snapshotDir,
		SnapshotWidth: f.snapshotWidth,
	})
	// on a signal the main thread tears down and terminates GLFW; the
	// process exits only after that
	closer.Bind(func() {
		select {
		case <-a.Done():
		default:
			a.RequestQuit()
		}
		select {
		case <-terminated:
		case <-time.After(2 * time.Second):
			log.Warn("shutdown timed out")
		}
	})

	a.Run()
	return 0
}

func loadParameters(path string) (config.GradientParameters, error) {
	if path == "" {
		return config.DefaultParameters(), nil
	}
	o, err := config.LoadOverrides(path)
	if err != nil {
		return config.GradientParameters{}, err
	}
	return config.NewParameters(o)
}
