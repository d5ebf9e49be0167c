// Package profiling times the work done for each drawn frame and keeps a
// running summary of the frames drawn since profiling was last enabled.
package profiling

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates named timings for the frame in progress and
// statistics over completed frames.
type Recorder struct {
	mu      sync.Mutex
	enabled bool

	current map[string]time.Duration

	frames  int
	busy    time.Duration
	worst   time.Duration
	since   time.Time
	slowest string
}

func NewRecorder() *Recorder {
	return &Recorder{
		enabled: true,
		current: make(map[string]time.Duration),
		since:   time.Now(),
	}
}

var std = NewRecorder()

// Default returns the recorder behind the package level functions
func Default() *Recorder { return std }

func (r *Recorder) SetEnabled(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if on && !r.enabled {
		r.resetStats(time.Now())
	}
	r.enabled = on
}

func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Track starts timing a section of the current frame. Call the returned
// function when the section ends.
func (r *Recorder) Track(section string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		r.mu.Lock()
		if r.enabled {
			r.current[section] += d
		}
		r.mu.Unlock()
	}
}

// BeginFrame discards the section timings of the previous frame
func (r *Recorder) BeginFrame() {
	r.mu.Lock()
	clear(r.current)
	r.mu.Unlock()
}

// EndFrame adds a drawn frame that took d to the summary
func (r *Recorder) EndFrame(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	r.frames++
	r.busy += d
	if d > r.worst {
		r.worst = d
		r.slowest = r.topLocked(1)
	}
}

func (r *Recorder) resetStats(now time.Time) {
	r.frames = 0
	r.busy = 0
	r.worst = 0
	r.slowest = ""
	r.since = now
}

// Sections returns a copy of the current frame's section timings
func (r *Recorder) Sections() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.current))
	for k, v := range r.current {
		out[k] = v
	}
	return out
}

// TopN lists the n most expensive sections of the current frame, e.g.
// "render.Frame:4.2ms, app.Swap:2.1ms"
func (r *Recorder) TopN(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.topLocked(n)
}

func (r *Recorder) topLocked(n int) string {
	names := make([]string, 0, len(r.current))
	for name := range r.current {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if r.current[a] != r.current[b] {
			if r.current[a] > r.current[b] {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	names = names[:min(n, len(names))]

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s:%.1fms", name, ms(r.current[name]))
	}
	return strings.Join(parts, ", ")
}

// Summary describes the frames drawn since stats were last reset, relative
// to now. Drawn frames per second counts only frames actually drawn, so an
// idle background reports close to zero.
type Summary struct {
	Frames  int
	Elapsed time.Duration
	FPS     float64
	AvgBusy time.Duration
	Worst   time.Duration
	Slowest string
}

func (s Summary) String() string {
	if s.Frames == 0 {
		return fmt.Sprintf("no frames drawn in %.1fs", s.Elapsed.Seconds())
	}
	return fmt.Sprintf("%d frames in %.1fs (%.1f fps), avg %.2fms, worst %.2fms [%s]",
		s.Frames, s.Elapsed.Seconds(), s.FPS, ms(s.AvgBusy), ms(s.Worst), s.Slowest)
}

func (r *Recorder) Summary(now time.Time) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Summary{
		Frames:  r.frames,
		Elapsed: now.Sub(r.since),
		Worst:   r.worst,
		Slowest: r.slowest,
	}
	if s.Frames > 0 {
		s.AvgBusy = r.busy / time.Duration(s.Frames)
	}
	if s.Elapsed > 0 {
		s.FPS = float64(s.Frames) / s.Elapsed.Seconds()
	}
	return s
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func SetEnabled(on bool) { std.SetEnabled(on) }

func Enabled() bool { return std.Enabled() }

// Track times a section of the current frame on the default recorder.
// Usage: defer profiling.Track("render.Frame")()
func Track(section string) func() { return std.Track(section) }

func BeginFrame() { std.BeginFrame() }

func EndFrame(d time.Duration) { std.EndFrame(d) }

func TopN(n int) string { return std.TopN(n) }

// Stats summarizes the default recorder up to now
func Stats() Summary { return std.Summary(time.Now()) }
