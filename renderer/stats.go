package renderer

import "time"

type FactorStat struct {
	// The factor name ("base" for the all-lights factor).
	Name string

	// Ticks executed and passes promoted so far.
	Ticks  uint64
	Passes uint32

	// Duration of the factor's most recent tick.
	LastTickTime time.Duration
}

type BakeStats struct {
	// Session id of the active workbench; zero before the snapshot is
	// taken.
	Session uint64

	// True once atlas mapping has completed.
	AtlasReady bool

	// Occupied texel count of the atlas map.
	OccupiedTexels uint32

	// Individual factor stats.
	Factors []FactorStat
}
