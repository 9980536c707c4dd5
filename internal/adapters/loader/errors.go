package loader

import "errors"

// Sentinel error kinds for dataset loading.
var (
	ErrRequest  = errors.New("dataset request failed")
	ErrStatus   = errors.New("dataset unexpected status")
	ErrDecode   = errors.New("dataset decode failed")
	ErrTooLarge = errors.New("dataset exceeds size limit")
	ErrLocation = errors.New("invalid dataset location")
)
