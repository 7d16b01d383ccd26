package atlas

import "errors"

// Validation errors raised synchronously while constructing an atlas map.
// They indicate an authoring defect, abort the whole mapping pass and are
// never retried; callers match them with errors.Is.
var (
	ErrUnsupportedGeometry = errors.New("atlas: unsupported geometry")
	ErrMaterialConflict    = errors.New("atlas: material conflict")
	ErrCapacityExceeded    = errors.New("atlas: face count exceeds per-item capacity")
)
