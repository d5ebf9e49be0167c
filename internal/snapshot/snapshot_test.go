package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"reactive-gradient/internal/gpu/gputest"
)

func TestCaptureFlipsRows(t *testing.T) {
	ctx := gputest.New()
	// 1x2: bottom row red, top row blue in GL order
	ctx.Pixels = []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	img, err := Capture(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestCaptureRejectsShortReads(t *testing.T) {
	ctx := gputest.New()
	ctx.Pixels = []byte{1, 2, 3}
	if _, err := Capture(ctx, 2, 2); err == nil {
		t.Errorf("expected an error for a short read")
	}
	if _, err := Capture(ctx, 0, 2); err == nil {
		t.Errorf("expected an error for an empty framebuffer")
	}
}

func TestScaleKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	got := Scale(src, 100).Bounds()
	if got.Dx() != 100 || got.Dy() != 50 {
		t.Errorf("scaled to %v, want 100x50", got)
	}
	if Scale(src, 0) != image.Image(src) || Scale(src, 800) != image.Image(src) {
		t.Errorf("images within bounds should be returned unchanged")
	}
}

func TestWriteProducesPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	path := filepath.Join(t.TempDir(), "poster.png")

	if err := Write(path, src, 32); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 16 {
		t.Errorf("png is %dx%d, want 32x16", cfg.Width, cfg.Height)
	}
}
