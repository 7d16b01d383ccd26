package scene

// An item participating in a bake session: a mesh handle, its shading
// material and a flag marking whether the baked lightmap should be bound to
// the material once mapping completes. Items are owned by the authoring
// layer; the bake core only reads a frozen snapshot of the item list.
type Item struct {
	Name     string
	Mesh     *MeshBuffer
	Material *Material

	// Receive marks the item as a lightmap consumer. Non-receiving items
	// still occlude probe rays and occupy atlas space.
	Receive bool
}
