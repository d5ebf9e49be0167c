// Package snapshot saves the rendered gradient as a PNG poster image.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"reactive-gradient/internal/gpu"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"
)

// Capture reads back the current framebuffer. GL rows start at the bottom,
// so they are flipped into image order.
func Capture(ctx gpu.Context, width, height int32) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("capture %dx%d: empty framebuffer", width, height)
	}
	pix := ctx.ReadPixels(width, height)
	stride := int(width) * 4
	if len(pix) < stride*int(height) {
		return nil, fmt.Errorf("capture %dx%d: got %d bytes", width, height, len(pix))
	}

	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for y := 0; y < int(height); y++ {
		src := pix[(int(height)-1-y)*stride:][:stride]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img, nil
}

// Scale shrinks img to maxWidth keeping the aspect ratio. Images that are
// already narrow enough, or a maxWidth <= 0, are returned unchanged.
func Scale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Write encodes img as PNG at path, scaled down to maxWidth first
func Write(path string, img image.Image, maxWidth int) error {
	out := Scale(img, maxWidth)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	log.Info("snapshot saved", "path", path, "width", out.Bounds().Dx(), "height", out.Bounds().Dy())
	return nil
}
