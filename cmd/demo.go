package cmd

import (
	"github.com/unframework/lightbake/renderer"
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/types"
)

// Build the built-in demo scene: an open three-wall room with a key light
// overhead and a warm fill light near the floor, each isolated into its own
// bake factor. Every surface is a two-triangle quad with its secondary UV
// packed into a separate atlas quadrant, with a small gutter against edge
// bleed.
func demoScene() ([]*scene.Item, *scene.LightScene, []renderer.FactorSpec) {
	white := &scene.Material{Name: "white", Kind: scene.KindLambert, Albedo: types.XYZ(1, 1, 1)}

	floor := quadItem("floor", white,
		types.XYZ(-1, 0, 1), types.XYZ(1, 0, 1), types.XYZ(-1, 0, -1),
		types.XYZ(0, 1, 0),
		0.02, 0.02, 0.48, 0.48,
	)
	back := quadItem("back-wall", white,
		types.XYZ(-1, 0, -1), types.XYZ(1, 0, -1), types.XYZ(-1, 2, -1),
		types.XYZ(0, 0, 1),
		0.52, 0.02, 0.98, 0.48,
	)
	left := quadItem("left-wall", white,
		types.XYZ(-1, 0, 1), types.XYZ(-1, 0, -1), types.XYZ(-1, 2, 1),
		types.XYZ(1, 0, 0),
		0.02, 0.52, 0.48, 0.98,
	)
	right := quadItem("right-wall", white,
		types.XYZ(1, 0, -1), types.XYZ(1, 0, 1), types.XYZ(1, 2, -1),
		types.XYZ(-1, 0, 0),
		0.52, 0.52, 0.98, 0.98,
	)

	items := []*scene.Item{floor, back, left, right}

	lights := &scene.LightScene{
		Lights: []*scene.Light{
			{
				Name: "key", Group: "key",
				Position:  types.XYZ(0, 1.8, 0.4),
				Radius:    0.3,
				Color:     types.XYZ(1, 1, 1),
				Intensity: 1.5,
			},
			{
				Name: "fill", Group: "fill",
				Position:  types.XYZ(0.6, 0.4, 0.8),
				Radius:    0.15,
				Color:     types.XYZ(1, 0.7, 0.4),
				Intensity: 0.8,
			},
		},
		Occluders: items,
	}

	specs := []renderer.FactorSpec{
		{Name: "key", LightGroup: "key", Multiplier: 1},
		{Name: "fill", LightGroup: "fill", Multiplier: 1},
	}

	return items, lights, specs
}

// Build a two-triangle quad item spanning origin, cornerU and cornerV; its
// secondary UVs cover the (u0,v0)-(u1,v1) atlas rect.
func quadItem(name string, mat *scene.Material, origin, cornerU, cornerV, normal types.Vec3, u0, v0, u1, v1 float32) *scene.Item {
	far := cornerU.Add(cornerV).Sub(origin)

	mesh := &scene.MeshBuffer{
		Positions: []types.Vec3{origin, cornerU, cornerV, far},
		Normals:   []types.Vec3{normal, normal, normal, normal},
		UV2: []types.Vec2{
			types.XY(u0, v0), types.XY(u1, v0),
			types.XY(u0, v1), types.XY(u1, v1),
		},
		Indices: []uint32{0, 1, 2, 1, 3, 2},
	}

	return &scene.Item{Name: name, Mesh: mesh, Material: mat, Receive: true}
}
