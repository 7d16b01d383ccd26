package baker

import "github.com/unframework/lightbake/atlas"

// The fill cursor tracks the next texel an irradiance factor will bake.
// Texels are visited in face-major, texel-minor order: all covered texels
// of a face before the next face, all faces of an item before the next
// item. The cursor only moves forward and never skips an occupied texel;
// completion of a pass is detected solely by wraparound.
type cursor struct {
	item  uint32
	face  uint32
	texel int
}

// Position the cursor at the first occupied texel of the map. The caller
// guarantees the map has at least one occupied texel.
func (c *cursor) reset(m *atlas.Map) {
	c.item, c.face, c.texel = 0, 0, 0
	c.seek(m)
}

// Get the raster offset of the texel under the cursor.
func (c *cursor) offset(m *atlas.Map) uint32 {
	return m.FaceTexels(c.item, c.face)[c.texel]
}

// Advance one texel. Returns true when the cursor wrapped back to the start
// of the map, which marks the completion of a full pass.
func (c *cursor) advance(m *atlas.Map) bool {
	c.texel++
	if c.texel < len(m.FaceTexels(c.item, c.face)) {
		return false
	}

	c.texel = 0
	c.face++
	return c.seek(m)
}

// Move forward to the next face that covers at least one texel, wrapping
// past the last item. Returns true if the seek wrapped.
func (c *cursor) seek(m *atlas.Map) bool {
	wrapped := false
	for {
		if c.item >= uint32(len(m.Items)) {
			if wrapped {
				// Nothing occupied anywhere; callers guard against this
				return true
			}
			c.item, c.face = 0, 0
			wrapped = true
			continue
		}

		info := &m.Items[c.item]
		if c.face >= info.FaceCount {
			c.item++
			c.face = 0
			continue
		}

		if len(m.FaceTexels(c.item, c.face)) > 0 {
			return wrapped
		}
		c.face++
	}
}
