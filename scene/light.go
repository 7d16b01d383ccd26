package scene

import "github.com/unframework/lightbake/types"

// A light emitter participating in probe rendering. Lights are modeled as
// emissive spheres; a zero radius marks a point light which probe renderers
// substitute with a small finite sphere.
type Light struct {
	Name string

	// Optional group tag used to isolate this light into its own bake
	// factor. Ungrouped lights only contribute to the base factor.
	Group string

	Position  types.Vec3
	Radius    float32
	Color     types.Vec3
	Intensity float32
}

// Get the radiance emitted by the light surface.
func (l *Light) Radiance() types.Vec3 {
	return l.Color.Mul(l.Intensity)
}

// The illumination-only subset of the scene graph used for probe rendering.
// It is distinct from the display scene: probe renders see light emitters
// and occluding geometry, never display materials.
type LightScene struct {
	Lights    []*Light
	Occluders []*Item
}

// Derive the light scene subset for a named factor. The empty name selects
// every light. Occluder geometry is shared between all subsets.
func (ls *LightScene) Subset(group string) *LightScene {
	if group == "" {
		return ls
	}

	sub := &LightScene{Occluders: ls.Occluders}
	for _, l := range ls.Lights {
		if l.Group == group {
			sub.Lights = append(sub.Lights, l)
		}
	}
	return sub
}

// Derive the subset of lights that carry no group tag. The base irradiance
// factor bakes this subset, so a grouped light contributes solely through
// its own factor layer and stays fully under its layer multiplier.
func (ls *LightScene) Ungrouped() *LightScene {
	sub := &LightScene{Occluders: ls.Occluders}
	for _, l := range ls.Lights {
		if l.Group == "" {
			sub.Lights = append(sub.Lights, l)
		}
	}
	return sub
}

// Collect the distinct non-empty group tags present in the light list, in
// first-seen order.
func (ls *LightScene) Groups() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, l := range ls.Lights {
		if l.Group == "" {
			continue
		}
		if _, ok := seen[l.Group]; ok {
			continue
		}
		seen[l.Group] = struct{}{}
		out = append(out, l.Group)
	}
	return out
}
