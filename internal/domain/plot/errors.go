package plot

import "errors"

// Sentinel error kinds for plot construction.
var (
	ErrNoData = errors.New("no records to plot")
)
