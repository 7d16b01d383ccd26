package compositor

import (
	"fmt"

	"github.com/unframework/lightbake/log"
	"github.com/unframework/lightbake/texture"
)

var logger = log.New("compositor")

// A compositor layer: one factor's accumulation texture and its intensity
// multiplier. The multiplier may be edited at any time between ticks and
// takes effect on the next Composite call; no temporal smoothing is
// applied.
type Layer struct {
	Name   string
	Source *texture.Texture

	multiplier float32
}

// Set the layer intensity multiplier.
func (l *Layer) SetMultiplier(m float32) {
	l.multiplier = m
}

// Get the layer intensity multiplier.
func (l *Layer) Multiplier() float32 {
	return l.multiplier
}

// The compositor blends the base irradiance buffer and any number of factor
// buffers into a single output texture. The output texture's identity is
// stable for the compositor's lifetime: consumers bind it once and observe
// content updates in place.
type Compositor struct {
	base   *texture.Texture
	layers []*Layer
	output *texture.Texture
}

// Create a compositor blending into the given output texture. The base
// buffer contributes with an implicit multiplier of one.
func New(base, output *texture.Texture) (*Compositor, error) {
	if base.Width != output.Width || base.Height != output.Height {
		return nil, fmt.Errorf(
			"compositor: base buffer is %dx%d but output is %dx%d",
			base.Width, base.Height, output.Width, output.Height,
		)
	}

	return &Compositor{
		base:   base,
		output: output,
	}, nil
}

// Add a named factor layer. Returns the layer handle whose multiplier may
// be edited for the compositor's lifetime.
func (c *Compositor) AddLayer(name string, source *texture.Texture, multiplier float32) (*Layer, error) {
	if source.Width != c.output.Width || source.Height != c.output.Height {
		return nil, fmt.Errorf(
			"compositor: layer %q is %dx%d but output is %dx%d",
			name, source.Width, source.Height, c.output.Width, c.output.Height,
		)
	}

	layer := &Layer{
		Name:       name,
		Source:     source,
		multiplier: multiplier,
	}
	c.layers = append(c.layers, layer)
	logger.Infof("added layer %q with multiplier %.3f", name, multiplier)

	return layer, nil
}

// Get the output texture. Identity is stable across Composite calls.
func (c *Compositor) Output() *texture.Texture {
	return c.output
}

// Blend all buffers into the output texture: clear to zero, then
// accumulate each layer additively, scaling sampled color by the layer's
// current multiplier. Runs once per display tick.
func (c *Compositor) Composite() {
	out := c.output.Data
	for i := range out {
		out[i] = 0
	}

	accumulate(out, c.base.Data, 1)
	for _, layer := range c.layers {
		accumulate(out, layer.Source.Data, layer.multiplier)
	}

	c.output.MarkDirty()
}

func accumulate(dst, src []float32, multiplier float32) {
	for i := range dst {
		dst[i] += src[i] * multiplier
	}
}
