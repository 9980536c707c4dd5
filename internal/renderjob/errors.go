package renderjob

import "errors"

// Sentinel error kinds for render jobs.
var (
	ErrFormat = errors.New("unsupported output format")
	ErrSource = errors.New("no dataset source")
	ErrOutput = errors.New("write output failed")
)
