package baker

import (
	"math/rand"
	"time"

	"github.com/unframework/lightbake/atlas"
	"github.com/unframework/lightbake/log"
	"github.com/unframework/lightbake/raster"
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/texture"
	"github.com/unframework/lightbake/types"
)

var logger = log.New("baker")

type TickResult uint8

// Per-tick outcomes. TickNotReady is an expected transient state while the
// atlas map is still being computed and is never surfaced as an error.
const (
	TickNotReady TickResult = iota
	TickAdvanced
	TickPromoted
	TickIdle
)

// Factor tuning options. Zero values select the defaults.
type Options struct {
	// Edge length of the square probe render target, in texels.
	ProbeSize uint32

	// Probe camera field of view in degrees.
	ProbeFOV float32

	// Distance the probe camera is pushed off the surface along the
	// interpolated normal.
	NormalOffset float32

	// Color returned by probe rays that hit nothing.
	Background types.Vec3

	// Average blends revisits into a moving average instead of overwriting
	// the previous estimate. Off by default: the baseline policy trades
	// convergence for responsiveness and overwrites every visit.
	Average bool

	// Seed for the probe roll generator. Zero picks a time-based seed.
	Seed int64
}

func (o *Options) defaults() {
	if o.ProbeSize == 0 {
		o.ProbeSize = 16
	}
	if o.ProbeFOV == 0 {
		o.ProbeFOV = 90
	}
	if o.NormalOffset == 0 {
		o.NormalOffset = 0.05
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
}

// Per-factor accumulation buffer. The texture is the buffer: each tick
// overwrites exactly one texel in place, and the compositor reads the same
// texture between ticks. Passes counts completed cursor wraparounds.
type Accumulator struct {
	Width  uint32
	Height uint32

	Texture *texture.Texture

	Passes uint32
}

// Factor tick statistics.
type Stats struct {
	Ticks        uint64
	Passes       uint32
	LastTickTime time.Duration
}

// A Factor progressively bakes one irradiance contribution against its own
// light-scene subset. Each scheduled tick bakes exactly one atlas texel:
// resolve the texel to a surface point, render one hemisphere probe there,
// reduce the readback to a single irradiance estimate and write it into the
// factor's accumulation buffer. A factor owns its accumulation buffer
// exclusively; multiple factors may share one atlas map read-only.
type Factor struct {
	Name string

	atlas  *atlas.Map
	buf    *Accumulator
	cursor cursor

	probeTarget *raster.Target
	occluders   []raster.Tri
	emitters    []raster.Sphere

	opts  Options
	rng   *rand.Rand
	stats Stats

	// Per-texel visit counts for the moving-average mode.
	visits []uint32
}

// Create a new factor baking the given light scene subset into a fresh
// width x height accumulation buffer. The factor stays in the not-ready
// state until an atlas map is attached.
func NewFactor(name string, lights *scene.LightScene, width, height uint32, opts Options) *Factor {
	opts.defaults()

	f := &Factor{
		Name: name,
		buf: &Accumulator{
			Width:   width,
			Height:  height,
			Texture: texture.New(width, height, texture.Linear),
		},
		probeTarget: raster.NewTarget(opts.ProbeSize, opts.ProbeSize),
		occluders:   flattenOccluders(lights.Occluders),
		emitters:    flattenEmitters(lights.Lights),
		opts:        opts,
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}
	if opts.Average {
		f.visits = make([]uint32, width*height)
	}
	return f
}

// Attach the completed atlas map and position the fill cursor at the first
// occupied texel. Attaching the same map again is a no-op.
func (f *Factor) Attach(m *atlas.Map) {
	if f.atlas == m {
		return
	}
	f.atlas = m
	if m.OccupiedCount() > 0 {
		f.cursor.reset(m)
	}
}

// Get the factor's accumulation buffer.
func (f *Factor) Buffer() *Accumulator {
	return f.buf
}

// Get factor statistics.
func (f *Factor) Stats() Stats {
	return f.stats
}

// Bake exactly one texel. Returns TickNotReady while no atlas map is
// attached and TickPromoted on the tick that completes a full pass over the
// map. Probe render or readback failure is fatal and propagated as-is.
func (f *Factor) Tick() (TickResult, error) {
	if f.atlas == nil {
		return TickNotReady, nil
	}
	if f.atlas.OccupiedCount() == 0 {
		return TickIdle, nil
	}

	start := time.Now()

	offset := f.cursor.offset(f.atlas)
	tex, ok := f.atlas.TexelAt(offset)
	if !ok {
		// Cursor only walks occupied texels
		panic("baker: cursor resolved an unmapped texel")
	}

	mesh := f.atlas.Items[tex.ItemIndex].Mesh
	pos, normal := interpolateSurface(mesh, tex)

	if err := f.probeTarget.RenderProbe(f.probeView(pos, normal), f.occluders, f.emitters, f.opts.Background); err != nil {
		return TickNotReady, err
	}
	pix, err := f.probeTarget.ReadPixels()
	if err != nil {
		return TickNotReady, err
	}

	est := meanRGB(pix)
	f.writeTexel(offset, est)
	f.buf.Texture.MarkDirty()

	wrapped := f.cursor.advance(f.atlas)

	f.stats.Ticks++
	f.stats.LastTickTime = time.Since(start)

	if wrapped {
		f.buf.Passes++
		f.stats.Passes = f.buf.Passes
		logger.Infof("factor %q promoted pass %d after %d ticks", f.Name, f.buf.Passes, f.stats.Ticks)
		return TickPromoted, nil
	}
	return TickAdvanced, nil
}

// Release the factor's probe render target. The accumulation buffer keeps
// its last written state; an abandoned bake is never rolled back.
func (f *Factor) Close() {
	f.probeTarget.Release()
}

func (f *Factor) writeTexel(offset uint32, est types.Vec3) {
	if f.visits != nil {
		n := f.visits[offset]
		if n > 0 {
			r, g, b, _ := f.buf.Texture.Texel(offset)
			est = types.XYZ(r, g, b).Lerp(est, 1.0/float32(n+1))
		}
		f.visits[offset] = n + 1
	}
	f.buf.Texture.SetTexel(offset, est[0], est[1], est[2], 1)
}

// Reduce a probe readback to the unweighted mean of its RGB channels.
func meanRGB(pix []float32) types.Vec3 {
	var sum types.Vec3
	count := len(pix) / 4
	for i := 0; i < count; i++ {
		sum[0] += pix[i*4]
		sum[1] += pix[i*4+1]
		sum[2] += pix[i*4+2]
	}
	return sum.Mul(1.0 / float32(count))
}
