package renderer

import (
	"github.com/unframework/lightbake/atlas"
	"github.com/unframework/lightbake/baker"
	"github.com/unframework/lightbake/compositor"
	"github.com/unframework/lightbake/log"
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/texture"
)

var logger = log.New("lightbake")

// Declares one independently baked irradiance factor. The light group
// selects the light-scene subset the factor's probes see; the multiplier
// seeds the factor's compositor layer and stays editable through the layer
// handle.
type FactorSpec struct {
	Name       string
	LightGroup string
	Multiplier float32
}

// Baker drives one bake session end to end: it snapshots the scene into a
// workbench, computes the atlas map once, then progresses any number of
// irradiance factors tick by tick and composites their buffers into the
// session's output texture. All work happens inside Advance; there is no
// internal goroutine, the caller's frame loop is the scheduler's clock.
type Baker struct {
	opts Options

	// Pending inputs; frozen into the workbench at auto-start.
	items  []*scene.Item
	lights *scene.LightScene
	specs  []FactorSpec

	delay uint32
	wb    *Workbench

	output  *texture.Texture
	base    *baker.Factor
	factors []*baker.Factor
	layers  map[string]*compositor.Layer
	comp    *compositor.Compositor
	sched   baker.TickScheduler

	onReady func(*atlas.Map)
	closed  bool
}

// Create a baker for the given participating items, light scene and factor
// declarations.
func New(items []*scene.Item, lights *scene.LightScene, specs []FactorSpec, opts Options) (*Baker, error) {
	opts.defaults()

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	factorOpts := baker.Options{
		ProbeSize:    opts.ProbeSize,
		ProbeFOV:     opts.ProbeFOV,
		NormalOffset: opts.NormalOffset,
		Background:   opts.Background,
		Average:      opts.Average,
		Seed:         opts.Seed,
	}

	b := &Baker{
		opts:   opts,
		items:  items,
		lights: lights,
		specs:  specs,
		delay:  opts.AutoStartDelay,
		output: texture.New(opts.Width, opts.Height, opts.Filter),
		layers: make(map[string]*compositor.Layer),
		sched:  baker.FeedbackScheduler(),
	}

	// The base factor bakes ungrouped lights only; grouped lights contribute
	// through their own factor layer so the layer multiplier governs their
	// whole contribution
	b.base = baker.NewFactor("base", lights.Ungrouped(), opts.Width, opts.Height, factorOpts)

	comp, err := compositor.New(b.base.Buffer().Texture, b.output)
	if err != nil {
		return nil, err
	}
	b.comp = comp

	for _, spec := range specs {
		multiplier := spec.Multiplier
		if multiplier == 0 {
			multiplier = 1
		}

		f := baker.NewFactor(spec.Name, lights.Subset(spec.LightGroup), opts.Width, opts.Height, factorOpts)
		layer, err := comp.AddLayer(spec.Name, f.Buffer().Texture, multiplier)
		if err != nil {
			b.Close()
			return nil, err
		}

		b.factors = append(b.factors, f)
		b.layers[spec.Name] = layer
	}

	return b, nil
}

// Register the readiness callback fired once, after atlas mapping
// completes. Dependent bakes gate their startup on it.
func (b *Baker) OnReady(fn func(*atlas.Map)) {
	b.onReady = fn
}

// Advance performs one frame's worth of bake work: take the workbench
// snapshot once the auto-start delay has elapsed, run atlas mapping exactly
// once, then split the tick budget across all factors and refresh the
// composited output. A zero budget selects Options.TickBudget.
//
// Atlas validation errors and probe device failures are returned as-is; a
// failed atlas construction leaves any previously valid output untouched.
func (b *Baker) Advance(budget uint32) error {
	if b.closed {
		return ErrClosed
	}
	if budget == 0 {
		budget = b.opts.TickBudget
	}

	if b.wb == nil {
		if b.delay > 0 {
			b.delay--
			return nil
		}
		b.wb = NewWorkbench(b.items, b.lights)
		logger.Noticef("workbench session %d: %d item(s), %d light(s)",
			b.wb.Session, len(b.wb.Items), len(b.wb.Lights.Lights))
	}

	if b.wb.Atlas == nil {
		m, err := atlas.Compute(b.wb.Items, b.opts.Width, b.opts.Height, b.output)
		if err != nil {
			return err
		}
		b.wb.Atlas = m

		for _, f := range b.allFactors() {
			f.Attach(m)
		}
		if b.onReady != nil {
			b.onReady(m)
		}
	}

	factors := b.allFactors()
	for idx, ticks := range b.sched.Schedule(factors, budget) {
		for t := uint32(0); t < ticks; t++ {
			if _, err := factors[idx].Tick(); err != nil {
				return err
			}
		}
	}

	b.comp.Composite()
	return nil
}

// Get the composited output texture. Identity is stable for the baker's
// lifetime and may be bound to material lightmap slots immediately.
func (b *Baker) Output() *texture.Texture {
	return b.output
}

// Get the atlas map, or nil while mapping has not completed. Diagnostics
// only; the map is read-only.
func (b *Baker) AtlasMap() *atlas.Map {
	if b.wb == nil {
		return nil
	}
	return b.wb.Atlas
}

// Get the named factor's intermediate accumulation texture for diagnostics.
// The empty name selects the base factor.
func (b *Baker) FactorTexture(name string) *texture.Texture {
	if name == "" {
		return b.base.Buffer().Texture
	}
	for _, f := range b.factors {
		if f.Name == name {
			return f.Buffer().Texture
		}
	}
	return nil
}

// Get the named factor's compositor layer handle for multiplier edits.
func (b *Baker) Layer(name string) *compositor.Layer {
	return b.layers[name]
}

// Get the number of full passes every factor has completed.
func (b *Baker) Passes() uint32 {
	passes := b.base.Buffer().Passes
	for _, f := range b.factors {
		if f.Buffer().Passes < passes {
			passes = f.Buffer().Passes
		}
	}
	return passes
}

// Get bake statistics.
func (b *Baker) Stats() BakeStats {
	stats := BakeStats{}
	if b.wb != nil {
		stats.Session = b.wb.Session
		if b.wb.Atlas != nil {
			stats.AtlasReady = true
			stats.OccupiedTexels = b.wb.Atlas.OccupiedCount()
		}
	}

	for _, f := range b.allFactors() {
		fs := f.Stats()
		stats.Factors = append(stats.Factors, FactorStat{
			Name:         f.Name,
			Ticks:        fs.Ticks,
			Passes:       fs.Passes,
			LastTickTime: fs.LastTickTime,
		})
	}
	return stats
}

// Release the session's probe render targets. Accumulation buffers and the
// output texture keep their last written state; a bake abandoned between
// ticks is never rolled back.
func (b *Baker) Close() {
	if b.closed {
		return
	}
	b.closed = true

	for _, f := range b.allFactors() {
		f.Close()
	}
}

func (b *Baker) allFactors() []*baker.Factor {
	out := make([]*baker.Factor, 0, len(b.factors)+1)
	out = append(out, b.base)
	return append(out, b.factors...)
}
