package baker

import (
	"github.com/unframework/lightbake/raster"
	"github.com/unframework/lightbake/scene"
)

// Finite stand-in radius for point lights during probe renders.
const pointLightRadius = 0.05

// Flatten item meshes into world-space probe occluders. Non-receiving items
// occlude as well; probe rays only care about coverage.
func flattenOccluders(items []*scene.Item) []raster.Tri {
	var out []raster.Tri
	for _, item := range items {
		mesh := item.Mesh
		for face := uint32(0); face < mesh.FaceCount(); face++ {
			i0, i1, i2 := mesh.Face(face)
			out = append(out, raster.Tri{
				V0: mesh.Positions[i0],
				V1: mesh.Positions[i1],
				V2: mesh.Positions[i2],
			})
		}
	}
	return out
}

// Flatten lights into emissive probe spheres.
func flattenEmitters(lights []*scene.Light) []raster.Sphere {
	out := make([]raster.Sphere, 0, len(lights))
	for _, l := range lights {
		radius := l.Radius
		if radius <= 0 {
			radius = pointLightRadius
		}
		out = append(out, raster.Sphere{
			Center:   l.Position,
			Radius:   radius,
			Radiance: l.Radiance(),
		})
	}
	return out
}
