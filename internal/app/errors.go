package service

import "errors"

// Sentinel error kinds returned by the service.
var (
	ErrNotReady   = errors.New("dataset not loaded yet")
	ErrLoadFailed = errors.New("dataset load failed")
	ErrNoSource   = errors.New("no dataset source configured")
	ErrNotStarted = errors.New("service not started")
)
