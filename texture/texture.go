package texture

import "fmt"

type Filter uint8

// Supported sampling filters for textures handed to display materials.
const (
	Nearest Filter = iota
	Linear
)

func (f Filter) String() string {
	switch f {
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	}
	panic("texture: unsupported filter")
}

// A float32 RGBA texture resident in host memory. Consumers bind a *Texture
// once and observe content updates in place; the identity of a texture never
// changes for its lifetime. Writers bump the version counter after mutating
// Data so that display backends know when to re-upload.
type Texture struct {
	Width  uint32
	Height uint32

	// RGBA texel data, 4 floats per texel, scanline order.
	Data []float32

	Filter Filter

	version uint64
}

// Create a new zero-filled texture.
func New(width, height uint32, filter Filter) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height*4),
		Filter: filter,
	}
}

// Mark texture contents as modified.
func (t *Texture) MarkDirty() {
	t.version++
}

// Get the texture content version. Incremented on every MarkDirty call.
func (t *Texture) Version() uint64 {
	return t.version
}

// Zero all texel data.
func (t *Texture) Clear() {
	for i := range t.Data {
		t.Data[i] = 0
	}
}

// Overwrite the texel at the given raster offset.
func (t *Texture) SetTexel(offset uint32, r, g, b, a float32) {
	base := offset * 4
	t.Data[base] = r
	t.Data[base+1] = g
	t.Data[base+2] = b
	t.Data[base+3] = a
}

// Fetch the texel at the given raster offset.
func (t *Texture) Texel(offset uint32) (r, g, b, a float32) {
	base := offset * 4
	return t.Data[base], t.Data[base+1], t.Data[base+2], t.Data[base+3]
}

// Convert texel data to 8 bits per channel, clamping each component to
// [0, 1]. Used by display backends and image writers.
func (t *Texture) RGBA8() []uint8 {
	out := make([]uint8, len(t.Data))
	for i, v := range t.Data {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[i] = uint8(v*255.0 + 0.5)
	}
	return out
}

// Implements Stringer.
func (t *Texture) String() string {
	return fmt.Sprintf("texture (%d x %d, %s)", t.Width, t.Height, t.Filter)
}
