package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulatesPerFrame(t *testing.T) {
	r := NewRecorder()
	for i := 0; i < 3; i++ {
		r.Track("render.Frame")()
	}
	if _, ok := r.Sections()["render.Frame"]; !ok {
		t.Fatalf("render.Frame not recorded")
	}

	r.BeginFrame()
	if len(r.Sections()) != 0 {
		t.Errorf("BeginFrame should clear section timings")
	}
}

func TestTopNOrdersByDuration(t *testing.T) {
	r := NewRecorder()
	r.current["a"] = 1 * time.Millisecond
	r.current["b"] = 3 * time.Millisecond
	r.current["c"] = 2 * time.Millisecond
	r.current["d"] = 2 * time.Millisecond

	if got := r.TopN(3); got != "b:3.0ms, c:2.0ms, d:2.0ms" {
		t.Errorf("TopN(3) = %q", got)
	}
	if n := strings.Count(r.TopN(10), ","); n != 3 {
		t.Errorf("TopN should cap at the number of sections, got %q", r.TopN(10))
	}
}

func TestDisabledRecorderRecordsNothing(t *testing.T) {
	r := NewRecorder()
	r.SetEnabled(false)

	r.Track("x")()
	r.EndFrame(time.Millisecond)
	if len(r.Sections()) != 0 {
		t.Errorf("disabled recorder tracked %v", r.Sections())
	}
	if s := r.Summary(time.Now()); s.Frames != 0 {
		t.Errorf("disabled recorder counted %d frames", s.Frames)
	}
}

func TestSummaryCountsDrawnFrames(t *testing.T) {
	r := NewRecorder()
	start := r.since

	r.current["render.Frame"] = 3 * time.Millisecond
	r.EndFrame(4 * time.Millisecond)
	r.EndFrame(2 * time.Millisecond)
	r.EndFrame(6 * time.Millisecond)

	s := r.Summary(start.Add(time.Second))
	if s.Frames != 3 {
		t.Errorf("frames = %d, want 3", s.Frames)
	}
	if s.FPS < 2.99 || s.FPS > 3.01 {
		t.Errorf("fps = %v, want 3", s.FPS)
	}
	if s.AvgBusy != 4*time.Millisecond || s.Worst != 6*time.Millisecond {
		t.Errorf("avg %v worst %v", s.AvgBusy, s.Worst)
	}
	if s.Slowest != "render.Frame:3.0ms" {
		t.Errorf("slowest = %q", s.Slowest)
	}
	if !strings.Contains(s.String(), "3 frames") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestReenablingStartsNewSummary(t *testing.T) {
	r := NewRecorder()
	r.EndFrame(time.Millisecond)
	r.SetEnabled(false)
	r.SetEnabled(true)

	if s := r.Summary(time.Now()); s.Frames != 0 {
		t.Errorf("frames = %d after re-enabling, want 0", s.Frames)
	}
}
