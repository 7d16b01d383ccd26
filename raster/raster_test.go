package raster

import (
	"errors"
	"testing"

	"github.com/unframework/lightbake/types"
)

func TestDrawTriangleCoverage(t *testing.T) {
	target := NewTarget(8, 8)

	// Full-target quad as two triangles carrying distinct id attributes
	err := target.DrawTriangle(
		Vertex{Pos: types.XY(0, 0), Data: types.XYZW(0, 0, 1, 1)},
		Vertex{Pos: types.XY(1, 0), Data: types.XYZW(1, 0, 1, 1)},
		Vertex{Pos: types.XY(0, 1), Data: types.XYZW(0, 1, 1, 1)},
	)
	if err != nil {
		t.Fatal(err)
	}
	err = target.DrawTriangle(
		Vertex{Pos: types.XY(1, 0), Data: types.XYZW(1, 0, 2, 1)},
		Vertex{Pos: types.XY(1, 1), Data: types.XYZW(1, 1, 2, 1)},
		Vertex{Pos: types.XY(0, 1), Data: types.XYZW(0, 1, 2, 1)},
	)
	if err != nil {
		t.Fatal(err)
	}

	pix, err := target.ReadPixels()
	if err != nil {
		t.Fatal(err)
	}

	for offset := 0; offset < 64; offset++ {
		id := uint32(pix[offset*4+2] + 0.5)
		if id != 1 && id != 2 {
			t.Fatalf("texel %d: expected id 1 or 2; got %f", offset, pix[offset*4+2])
		}
	}

	// Texel (1,1) center is well below the diagonal and must belong to the
	// first triangle with interpolated local coords near (1.5/8, 1.5/8)
	base := (1*8 + 1) * 4
	if id := uint32(pix[base+2] + 0.5); id != 1 {
		t.Fatalf("expected texel (1,1) to belong to face 1; got %d", id)
	}
	wantU := float32(1.5) / 8
	if diff := pix[base] - wantU; diff < -1e-4 || diff > 1e-4 {
		t.Fatalf("expected local U %f; got %f", wantU, pix[base])
	}
}

func TestDrawTriangleLastWins(t *testing.T) {
	target := NewTarget(4, 4)

	full := func(id float32) [3]Vertex {
		return [3]Vertex{
			{Pos: types.XY(-1, -1), Data: types.XYZW(0, 0, id, 1)},
			{Pos: types.XY(3, -1), Data: types.XYZW(0, 0, id, 1)},
			{Pos: types.XY(-1, 3), Data: types.XYZW(0, 0, id, 1)},
		}
	}

	for _, id := range []float32{7, 9} {
		v := full(id)
		if err := target.DrawTriangle(v[0], v[1], v[2]); err != nil {
			t.Fatal(err)
		}
	}

	pix, _ := target.ReadPixels()
	for offset := 0; offset < 16; offset++ {
		if id := uint32(pix[offset*4+2] + 0.5); id != 9 {
			t.Fatalf("texel %d: expected last submitted id 9; got %d", offset, id)
		}
	}
}

func TestTargetLost(t *testing.T) {
	target := NewTarget(4, 4)
	target.Release()

	if _, err := target.ReadPixels(); !errors.Is(err, ErrTargetLost) {
		t.Fatalf("expected ErrTargetLost from ReadPixels; got %v", err)
	}
	if err := target.Clear(); !errors.Is(err, ErrTargetLost) {
		t.Fatalf("expected ErrTargetLost from Clear; got %v", err)
	}
	v := Vertex{Pos: types.XY(0, 0)}
	if err := target.DrawTriangle(v, v, v); !errors.Is(err, ErrTargetLost) {
		t.Fatalf("expected ErrTargetLost from DrawTriangle; got %v", err)
	}
	if err := target.RenderProbe(Probe{}, nil, nil, types.Vec3{}); !errors.Is(err, ErrTargetLost) {
		t.Fatalf("expected ErrTargetLost from RenderProbe; got %v", err)
	}

	// Releasing twice is fine
	target.Release()
}

func TestRenderProbeShading(t *testing.T) {
	type spec struct {
		occluders []Tri
		emitters  []Sphere
		expect    types.Vec3
	}

	// Probe looking straight down -Z with a narrow frustum
	probe := Probe{
		Origin: types.XYZ(0, 0, 0),
		Corners: [4]types.Vec3{
			types.XYZ(-0.1, 0.1, -1), types.XYZ(0.1, 0.1, -1),
			types.XYZ(-0.1, -0.1, -1), types.XYZ(0.1, -0.1, -1),
		},
	}

	emitter := Sphere{Center: types.XYZ(0, 0, -5), Radius: 3, Radiance: types.XYZ(2, 3, 4)}
	blocker := Tri{
		V0: types.XYZ(-10, -10, -1),
		V1: types.XYZ(10, -10, -1),
		V2: types.XYZ(0, 10, -1),
	}

	specs := []spec{
		// Emitter fills the frustum
		{nil, []Sphere{emitter}, types.XYZ(2, 3, 4)},
		// Occluder in front of the emitter shades to black
		{[]Tri{blocker}, []Sphere{emitter}, types.Vec3{}},
		// Nothing hit: background
		{nil, nil, types.XYZ(0.5, 0.5, 0.5)},
	}

	for index, s := range specs {
		target := NewTarget(4, 4)
		if err := target.RenderProbe(probe, s.occluders, s.emitters, types.XYZ(0.5, 0.5, 0.5)); err != nil {
			t.Fatal(err)
		}

		pix, err := target.ReadPixels()
		if err != nil {
			t.Fatal(err)
		}
		for offset := 0; offset < 16; offset++ {
			got := types.XYZ(pix[offset*4], pix[offset*4+1], pix[offset*4+2])
			if got != s.expect {
				t.Fatalf("[spec %d] texel %d: expected %v; got %v", index, offset, s.expect, got)
			}
		}
	}
}
