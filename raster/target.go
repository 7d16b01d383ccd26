package raster

import (
	"errors"
	"fmt"
)

var (
	// Returned when attempting to use a render target after it has been
	// released. Models the fatal device-loss case: callers must treat it as
	// non-retryable.
	ErrTargetLost = errors.New("raster: render target released")
)

// An offscreen float render target. Targets stand in for GPU framebuffers:
// draw calls rasterize into them synchronously and ReadPixels performs the
// readback that a GPU pipeline would issue after a submission. A released
// target fails every subsequent operation with ErrTargetLost.
type Target struct {
	Width  uint32
	Height uint32

	// RGBA texel data, 4 floats per texel, scanline order.
	pix []float32

	released bool
}

// Create a new render target cleared to zero.
func NewTarget(width, height uint32) *Target {
	return &Target{
		Width:  width,
		Height: height,
		pix:    make([]float32, width*height*4),
	}
}

// Clear all texels to zero.
func (t *Target) Clear() error {
	if t.released {
		return ErrTargetLost
	}
	for i := range t.pix {
		t.pix[i] = 0
	}
	return nil
}

// Read back the full target contents. The returned slice is a copy; the
// caller owns it.
func (t *Target) ReadPixels() ([]float32, error) {
	if t.released {
		return nil, ErrTargetLost
	}
	out := make([]float32, len(t.pix))
	copy(out, t.pix)
	return out, nil
}

// Release the target storage. Safe to call multiple times.
func (t *Target) Release() {
	t.released = true
	t.pix = nil
}

// Implements Stringer.
func (t *Target) String() string {
	return fmt.Sprintf("render target (%d x %d)", t.Width, t.Height)
}
