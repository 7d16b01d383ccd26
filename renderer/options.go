package renderer

import (
	"github.com/unframework/lightbake/texture"
	"github.com/unframework/lightbake/types"
)

type Options struct {
	// Lightmap dims in texels.
	Width  uint32
	Height uint32

	// Edge length of the square probe render target.
	ProbeSize uint32

	// Probe camera field of view in degrees.
	ProbeFOV float32

	// Probe camera offset along the interpolated surface normal.
	NormalOffset float32

	// Color seen by probe rays that hit nothing.
	Background types.Vec3

	// Output texture filter mode.
	Filter texture.Filter

	// Number of Advance calls to swallow before the first workbench
	// snapshot is taken.
	AutoStartDelay uint32

	// Blend revisits into a moving average instead of overwriting.
	Average bool

	// Per-frame tick budget used when Advance is called with a zero
	// budget.
	TickBudget uint32

	// Seed for probe sampling. Zero picks a time-based seed.
	Seed int64
}

func (o *Options) defaults() {
	if o.Width == 0 {
		o.Width = 64
	}
	if o.Height == 0 {
		o.Height = 64
	}
	if o.TickBudget == 0 {
		o.TickBudget = 64
	}
}
