package atlas

import (
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/texture"
)

// Fixed face capacity per atlas item. Encoded face ids pack the item index
// and face index into a single float-representable value, so the per-item
// face budget is part of the wire format and cannot change per session.
const MaxItemFaces = 1000

// Number of data values stored per atlas texel: local quad U, local quad V
// and the encoded face id.
const texelStride = 3

// Per-item bookkeeping inside a Map.
type ItemInfo struct {
	FaceCount uint32

	// Original mesh and item handles for resolving texels back to surfaces.
	Mesh *scene.MeshBuffer
	Item *scene.Item

	// Raster offsets covered by each face, scanline order.
	faceTexels [][]uint32
}

// A resolved occupied texel.
type Texel struct {
	LocalU, LocalV float32
	ItemIndex      uint32
	FaceIndex      uint32
}

// The atlas map converts a scene's secondary-UV layout into a texel to
// 3D-surface lookup: for every atlas texel it records which item/face owns
// the texel and where within that face's local quad it falls. Immutable
// after construction; every consumer treats it as read-only.
type Map struct {
	Width  uint32
	Height uint32

	Items []ItemInfo

	// (localU, localV, encodedFaceID) per texel; id 0 marks an unmapped
	// texel.
	Data []float32

	// Diagnostics view of Data.
	Texture *texture.Texture

	occupied uint32
}

// Encode a combined (item, face) id. The zero value is reserved for
// unmapped texels.
func EncodeFaceID(itemIndex, faceIndex uint32) uint32 {
	return itemIndex*MaxItemFaces + faceIndex + 1
}

// Decode a combined id back to its (item, face) pair.
func DecodeFaceID(id uint32) (itemIndex, faceIndex uint32) {
	id--
	return id / MaxItemFaces, id % MaxItemFaces
}

// Resolve the texel at the given raster offset. The second return value is
// false for unmapped texels.
func (m *Map) TexelAt(offset uint32) (Texel, bool) {
	base := offset * texelStride
	id := uint32(m.Data[base+2] + 0.5)
	if id == 0 {
		return Texel{}, false
	}

	itemIndex, faceIndex := DecodeFaceID(id)
	return Texel{
		LocalU:    m.Data[base],
		LocalV:    m.Data[base+1],
		ItemIndex: itemIndex,
		FaceIndex: faceIndex,
	}, true
}

// Get the raster offsets covered by a face, in scanline order.
func (m *Map) FaceTexels(itemIndex, faceIndex uint32) []uint32 {
	return m.Items[itemIndex].faceTexels[faceIndex]
}

// Get the total number of occupied texels.
func (m *Map) OccupiedCount() uint32 {
	return m.occupied
}
