package svgplot

import "errors"

// Sentinel error kinds for SVG rendering.
var (
	ErrRender = errors.New("svg render failed")
)
