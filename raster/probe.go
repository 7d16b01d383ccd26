package raster

import (
	"math"

	"github.com/unframework/lightbake/types"
)

// A world-space occluder triangle. Occluders block probe rays and shade to
// black; they carry no material.
type Tri struct {
	V0, V1, V2 types.Vec3
}

// An emissive sphere standing in for a light source during probe renders.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Radiance types.Vec3
}

// A probe view: camera origin plus the frustum corner ray directions
// (top-left, top-right, bottom-left, bottom-right). Per-texel rays are
// generated by bilinear interpolation of the corner rays, the same shortcut
// a GPU tracer uses to avoid a full inverse projection per pixel.
type Probe struct {
	Origin  types.Vec3
	Corners [4]types.Vec3
}

const rayEpsilon = 1e-4

// Render the light scene from the probe's point of view. Every texel traces
// one ray: the nearest emitter hit shades to its radiance, the nearest
// occluder hit shades to black, a miss shades to the background color. The
// caller reads the result back and reduces it to an irradiance estimate.
func (t *Target) RenderProbe(p Probe, occluders []Tri, emitters []Sphere, background types.Vec3) error {
	if t.released {
		return ErrTargetLost
	}

	for py := uint32(0); py < t.Height; py++ {
		v := (float32(py) + 0.5) / float32(t.Height)
		for px := uint32(0); px < t.Width; px++ {
			u := (float32(px) + 0.5) / float32(t.Width)

			top := p.Corners[0].Lerp(p.Corners[1], u)
			bottom := p.Corners[2].Lerp(p.Corners[3], u)
			dir := top.Lerp(bottom, v).Normalize()

			color := shadeRay(p.Origin, dir, occluders, emitters, background)

			base := (py*t.Width + px) * 4
			t.pix[base] = color[0]
			t.pix[base+1] = color[1]
			t.pix[base+2] = color[2]
			t.pix[base+3] = 1
		}
	}

	return nil
}

func shadeRay(origin, dir types.Vec3, occluders []Tri, emitters []Sphere, background types.Vec3) types.Vec3 {
	nearest := float32(math.MaxFloat32)
	color := background

	for _, tri := range occluders {
		if dist, hit := intersectTri(origin, dir, tri); hit && dist < nearest {
			nearest = dist
			color = types.Vec3{}
		}
	}

	for _, s := range emitters {
		if dist, hit := intersectSphere(origin, dir, s); hit && dist < nearest {
			nearest = dist
			color = s.Radiance
		}
	}

	return color
}

// Moller-Trumbore ray/triangle intersection.
func intersectTri(origin, dir types.Vec3, tri Tri) (float32, bool) {
	e1 := tri.V1.Sub(tri.V0)
	e2 := tri.V2.Sub(tri.V0)

	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1.0 / det

	tvec := origin.Sub(tri.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := e2.Dot(qvec) * invDet
	if dist < rayEpsilon {
		return 0, false
	}
	return dist, true
}

func intersectSphere(origin, dir types.Vec3, s Sphere) (float32, bool) {
	oc := origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(math.Sqrt(float64(disc)))
	dist := -b - sq
	if dist < rayEpsilon {
		dist = -b + sq
	}
	if dist < rayEpsilon {
		return 0, false
	}
	return dist, true
}
