package renderer

import (
	"sync/atomic"

	"github.com/unframework/lightbake/atlas"
	"github.com/unframework/lightbake/scene"
)

var sessionCounter uint64

// A workbench is the immutable snapshot of the participating scene for one
// bake session: the frozen item list, the light scene, and (once computed)
// the atlas map. A workbench is never mutated after its atlas is set; when
// bake inputs change a new workbench with a fresh session id supersedes it.
type Workbench struct {
	Session uint64

	Items  []*scene.Item
	Lights *scene.LightScene

	// Set exactly once, when atlas mapping completes.
	Atlas *atlas.Map
}

// Snapshot the participating items and lights into a new workbench with the
// next session id.
func NewWorkbench(items []*scene.Item, lights *scene.LightScene) *Workbench {
	frozen := make([]*scene.Item, len(items))
	copy(frozen, items)

	return &Workbench{
		Session: atomic.AddUint64(&sessionCounter, 1),
		Items:   frozen,
		Lights:  lights,
	}
}
