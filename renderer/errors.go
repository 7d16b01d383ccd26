package renderer

import "errors"

var (
	ErrNoItems = errors.New("renderer: no participating items")
	ErrClosed  = errors.New("renderer: baker closed")
)
