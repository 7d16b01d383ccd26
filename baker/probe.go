package baker

import (
	"math"

	"github.com/unframework/lightbake/raster"
	"github.com/unframework/lightbake/types"
)

// Build the hemisphere probe view for a surface point. The camera sits
// slightly off the surface along the interpolated normal to avoid shadowing
// itself, looks down the normal with a wide field of view, and rolls its up
// vector by a fresh random angle in the tangent plane on every visit so
// that sampling noise decorrelates across revisits and neighboring texels.
func (f *Factor) probeView(pos, normal types.Vec3) raster.Probe {
	origin := pos.Add(normal.Mul(f.opts.NormalOffset))

	roll := float32(f.rng.Float64() * 2 * math.Pi)
	up := types.QuatFromAxisAngle(normal, roll).Rotate(perpendicular(normal))

	// Corner rays through the inverse view-projection, same shortcut a
	// frame camera uses for generating per-pixel rays
	view := types.LookAtV(origin, origin.Add(normal), up)
	proj := types.Perspective4(f.opts.ProbeFOV, 1, 0.01, 1000)
	inv := proj.Mul4(view).Inv()

	corner := func(x, y float32) types.Vec3 {
		v := inv.Mul4x1(types.XYZW(x, y, -1, 1))
		return v.Mul(1.0 / v[3]).Vec3().Sub(origin)
	}

	return raster.Probe{
		Origin: origin,
		Corners: [4]types.Vec3{
			corner(-1, 1), corner(1, 1),
			corner(-1, -1), corner(1, -1),
		},
	}
}

// Pick an arbitrary unit vector perpendicular to n.
func perpendicular(n types.Vec3) types.Vec3 {
	axis := types.XYZ(1, 0, 0)
	if n[0] > 0.5 || n[0] < -0.5 {
		axis = types.XYZ(0, 1, 0)
	}
	return n.Cross(axis).Normalize()
}
