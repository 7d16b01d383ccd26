package scene

import "github.com/unframework/lightbake/types"

// A mesh buffer stores indexed triangle geometry in world space. Lightmap
// placement requires a secondary UV channel (UV2) that is independent of any
// material texture mapping; its coordinates address the atlas in [0, 1].
type MeshBuffer struct {
	Positions []types.Vec3
	Normals   []types.Vec3
	UV2       []types.Vec2

	// Triangle list; three indices per face.
	Indices []uint32
}

// Get the number of triangle faces in the buffer.
func (m *MeshBuffer) FaceCount() uint32 {
	return uint32(len(m.Indices) / 3)
}

// Check whether the buffer carries an index list.
func (m *MeshBuffer) HasIndices() bool {
	return len(m.Indices) > 0
}

// Check whether the buffer carries per-vertex normals.
func (m *MeshBuffer) HasNormals() bool {
	return len(m.Normals) == len(m.Positions) && len(m.Normals) > 0
}

// Check whether the buffer carries a secondary UV channel.
func (m *MeshBuffer) HasUV2() bool {
	return len(m.UV2) == len(m.Positions) && len(m.UV2) > 0
}

// Get the vertex indices for a face.
func (m *MeshBuffer) Face(face uint32) (i0, i1, i2 uint32) {
	base := face * 3
	return m.Indices[base], m.Indices[base+1], m.Indices[base+2]
}
