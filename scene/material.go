package scene

import (
	"github.com/unframework/lightbake/texture"
	"github.com/unframework/lightbake/types"
)

type MaterialKind uint8

// Shading models that can receive a baked lightmap. Anything else is
// rejected during atlas construction.
const (
	KindLambert MaterialKind = iota
	KindPhong
	KindEmissive
)

func (k MaterialKind) String() string {
	switch k {
	case KindLambert:
		return "lambert"
	case KindPhong:
		return "phong"
	case KindEmissive:
		return "emissive"
	}
	return "unknown"
}

// A shading material handle. The Lightmap slot is assigned by the atlas
// mapper when the owning item participates in a bake; the display renderer
// samples it with the material UV2 channel.
type Material struct {
	Name   string
	Kind   MaterialKind
	Albedo types.Vec3

	Lightmap *texture.Texture
}

// Check whether this material supports diffuse lightmap shading.
func (m *Material) SupportsLightmap() bool {
	return m.Kind == KindLambert || m.Kind == KindPhong
}
