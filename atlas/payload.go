package atlas

import (
	"github.com/unframework/lightbake/raster"
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/types"
)

// Local quad corner assignment for the three vertices of a face. Faces come
// in pairs forming quads: even faces cover the (0,0)/(1,0)/(0,1) half, odd
// faces the (1,0)/(1,1)/(0,1) half. The irradiance baker relies on the same
// parity convention when it reconstructs the quad basis for a face.
var (
	evenFaceCorners = [3]types.Vec2{{0, 0}, {1, 0}, {0, 1}}
	oddFaceCorners  = [3]types.Vec2{{1, 0}, {1, 1}, {0, 1}}
)

// Get the local quad corner tags for a face.
func FaceCorners(faceIndex uint32) [3]types.Vec2 {
	if faceIndex%2 == 0 {
		return evenFaceCorners
	}
	return oddFaceCorners
}

// Un-index an item's triangle list into payload vertices, three per face.
// Each payload vertex is positioned by its secondary UV and tagged with its
// local quad corner and the combined (item, face) id, so every face carries
// a unique identifier without corrupting vertices shared between faces.
func payloadVertices(itemIndex uint32, mesh *scene.MeshBuffer) []raster.Vertex {
	faceCount := mesh.FaceCount()
	out := make([]raster.Vertex, 0, faceCount*3)

	for face := uint32(0); face < faceCount; face++ {
		i0, i1, i2 := mesh.Face(face)
		corners := FaceCorners(face)
		id := float32(EncodeFaceID(itemIndex, face))

		for k, idx := range [3]uint32{i0, i1, i2} {
			out = append(out, raster.Vertex{
				Pos:  mesh.UV2[idx],
				Data: types.XYZW(corners[k][0], corners[k][1], id, 1),
			})
		}
	}

	return out
}
