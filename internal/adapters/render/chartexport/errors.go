package chartexport

import "errors"

// Sentinel error kinds for chart export.
var (
	ErrFormat      = errors.New("unsupported chart format")
	ErrRender      = errors.New("chart render failed")
	ErrPlaceholder = errors.New("placeholder image written")
)
