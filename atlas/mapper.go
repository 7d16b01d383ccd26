package atlas

import (
	"fmt"
	"time"

	"github.com/unframework/lightbake/log"
	"github.com/unframework/lightbake/raster"
	"github.com/unframework/lightbake/scene"
	"github.com/unframework/lightbake/texture"
)

var logger = log.New("atlas")

// Compute rasterizes the items' secondary-UV layout into a new atlas map.
//
// The whole pass is one-shot and transactional: validation errors abort
// before any raster work or material mutation, so a failed mapping never
// leaks a partial map into the pipeline. On success the output texture is
// bound to the lightmap slot of every receiving item's material.
//
// Overlapping secondary-UV placements are not detected; rasterization order
// decides the owning face (last submitted wins). Correct non-overlapping
// UV2 packing is the caller's responsibility.
func Compute(items []*scene.Item, width, height uint32, output *texture.Texture) (*Map, error) {
	start := time.Now()

	if err := validate(items, output); err != nil {
		return nil, err
	}

	target := raster.NewTarget(width, height)
	defer target.Release()

	for itemIndex, item := range items {
		verts := payloadVertices(uint32(itemIndex), item.Mesh)
		for f := 0; f+2 < len(verts); f += 3 {
			if err := target.DrawTriangle(verts[f], verts[f+1], verts[f+2]); err != nil {
				return nil, err
			}
		}
	}

	pix, err := target.ReadPixels()
	if err != nil {
		return nil, err
	}

	m := &Map{
		Width:   width,
		Height:  height,
		Items:   make([]ItemInfo, len(items)),
		Data:    make([]float32, width*height*texelStride),
		Texture: texture.New(width, height, texture.Nearest),
	}

	for i, item := range items {
		m.Items[i] = ItemInfo{
			FaceCount:  item.Mesh.FaceCount(),
			Mesh:       item.Mesh,
			Item:       item,
			faceTexels: make([][]uint32, item.Mesh.FaceCount()),
		}
	}

	texelCount := width * height
	for offset := uint32(0); offset < texelCount; offset++ {
		r := pix[offset*4]
		g := pix[offset*4+1]
		b := pix[offset*4+2]

		base := offset * texelStride
		m.Data[base] = r
		m.Data[base+1] = g

		// Flat id attribute accumulates tiny interpolation error; snap it
		// back to the integer grid
		id := uint32(b + 0.5)
		if id == 0 {
			continue
		}
		m.Data[base+2] = float32(id)

		itemIndex, faceIndex := DecodeFaceID(id)
		if itemIndex >= uint32(len(m.Items)) || faceIndex >= m.Items[itemIndex].FaceCount {
			continue
		}

		info := &m.Items[itemIndex]
		info.faceTexels[faceIndex] = append(info.faceTexels[faceIndex], offset)
		m.occupied++

		m.Texture.SetTexel(offset, r, g, float32(id), 1)
	}
	m.Texture.MarkDirty()

	// Bind the session output texture to every receiving material
	if output != nil {
		for _, item := range items {
			if item.Receive {
				item.Material.Lightmap = output
			}
		}
	}

	logger.Noticef(
		"mapped %d item(s) into %dx%d atlas (%d occupied texels) in %s",
		len(items), width, height, m.occupied, time.Since(start),
	)

	return m, nil
}

func validate(items []*scene.Item, output *texture.Texture) error {
	for _, item := range items {
		mesh := item.Mesh
		switch {
		case mesh == nil || !mesh.HasIndices():
			return fmt.Errorf("%w: item %q has no index buffer", ErrUnsupportedGeometry, item.Name)
		case !mesh.HasNormals():
			return fmt.Errorf("%w: item %q has no normal attribute", ErrUnsupportedGeometry, item.Name)
		case !mesh.HasUV2():
			return fmt.Errorf("%w: item %q has no secondary UV attribute", ErrUnsupportedGeometry, item.Name)
		}

		if item.Material == nil || !item.Material.SupportsLightmap() {
			return fmt.Errorf("%w: item %q material does not support lightmap shading", ErrMaterialConflict, item.Name)
		}
		if item.Material.Lightmap != nil && item.Material.Lightmap != output {
			return fmt.Errorf("%w: item %q material already has a different lightmap bound", ErrMaterialConflict, item.Name)
		}

		if mesh.FaceCount() > MaxItemFaces {
			return fmt.Errorf("%w: item %q has %d faces (limit %d)", ErrCapacityExceeded, item.Name, mesh.FaceCount(), MaxItemFaces)
		}
	}

	return nil
}
