package raster

import "github.com/unframework/lightbake/types"

// A payload vertex submitted to the scan converter. Pos addresses the
// target in normalized [0, 1] coordinates; Data is the attribute payload
// interpolated across the triangle and written to covered texels.
type Vertex struct {
	Pos  types.Vec2
	Data types.Vec4
}

const degenerateAreaEpsilon = 1e-12

// Scan-convert a triangle into the target. Coverage is evaluated at texel
// centers; overlapping triangles resolve by submission order (last write
// wins). Scan conversion here is a coverage and ownership test only, there
// is no shading or blending.
func (t *Target) DrawTriangle(v0, v1, v2 Vertex) error {
	if t.released {
		return ErrTargetLost
	}

	w := float32(t.Width)
	h := float32(t.Height)

	// Triangle vertices in texel space
	x0, y0 := v0.Pos[0]*w, v0.Pos[1]*h
	x1, y1 := v1.Pos[0]*w, v1.Pos[1]*h
	x2, y2 := v2.Pos[0]*w, v2.Pos[1]*h

	area := float64((x1-x0)*(y2-y0) - (x2-x0)*(y1-y0))
	if area > -degenerateAreaEpsilon && area < degenerateAreaEpsilon {
		return nil
	}

	minX := clampTexel(min3(x0, x1, x2), t.Width)
	maxX := clampTexel(max3(x0, x1, x2), t.Width)
	minY := clampTexel(min3(y0, y1, y2), t.Height)
	maxY := clampTexel(max3(y0, y1, y2), t.Height)

	invArea := 1.0 / area
	for py := minY; py <= maxY; py++ {
		sy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			sx := float32(px) + 0.5

			// Normalized barycentric weights; invArea folds in the winding
			// sign so both orientations rasterize
			b0 := float64((x1-sx)*(y2-sy)-(x2-sx)*(y1-sy)) * invArea
			b1 := float64((x2-sx)*(y0-sy)-(x0-sx)*(y2-sy)) * invArea
			b2 := float64((x0-sx)*(y1-sy)-(x1-sx)*(y0-sy)) * invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			base := (py*t.Width + px) * 4
			for c := 0; c < 4; c++ {
				t.pix[base+uint32(c)] = float32(b0)*v0.Data[c] +
					float32(b1)*v1.Data[c] +
					float32(b2)*v2.Data[c]
			}
		}
	}

	return nil
}

func clampTexel(v float32, limit uint32) uint32 {
	if v < 0 {
		return 0
	}
	i := uint32(v)
	if i >= limit {
		return limit - 1
	}
	return i
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
