package model

import "errors"

// Sentinel error kinds for record conversion.
var (
	ErrMalformedTime = errors.New("malformed race time")
)
