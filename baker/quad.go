package baker

import (
	"github.com/unframework/lightbake/atlas"
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/types"
)

// Reconstruct the four quad corners of a face from its three vertices. The
// mapper tags faces in quad pairs (see atlas.FaceCorners); the fourth
// corner is completed as a parallelogram from the other three. Interpolating
// across this quad instead of the bare triangle matches how the secondary-UV
// layout treats face pairs, and is only valid while mapped faces are quads.
func quadBasis(mesh *scene.MeshBuffer, face uint32) (pos, normal [4]types.Vec3) {
	i0, i1, i2 := mesh.Face(face)

	p0, p1, p2 := mesh.Positions[i0], mesh.Positions[i1], mesh.Positions[i2]
	n0, n1, n2 := mesh.Normals[i0], mesh.Normals[i1], mesh.Normals[i2]

	if face%2 == 0 {
		// Corners (0,0), (1,0), (0,1); synthesize (1,1)
		pos = [4]types.Vec3{p0, p1, p2, p1.Add(p2).Sub(p0)}
		normal = [4]types.Vec3{n0, n1, n2, n1.Add(n2).Sub(n0)}
	} else {
		// Corners (1,0), (1,1), (0,1); synthesize (0,0)
		pos = [4]types.Vec3{p0.Add(p2).Sub(p1), p0, p2, p1}
		normal = [4]types.Vec3{n0.Add(n2).Sub(n1), n0, n2, n1}
	}
	return pos, normal
}

// Interpolate the 3D surface position and normal for an atlas texel by
// bilinear interpolation across the owning face's quad. Corner order is
// (0,0), (1,0), (0,1), (1,1).
func interpolateSurface(mesh *scene.MeshBuffer, t atlas.Texel) (types.Vec3, types.Vec3) {
	pos, normal := quadBasis(mesh, t.FaceIndex)

	u, v := t.LocalU, t.LocalV
	p := pos[0].Lerp(pos[1], u).Lerp(pos[2].Lerp(pos[3], u), v)
	n := normal[0].Lerp(normal[1], u).Lerp(normal[2].Lerp(normal[3], u), v).Normalize()

	return p, n
}
