package sitecheck

import "errors"

// Sentinel kinds for check failures.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrUnexpected   = errors.New("unexpected response")
	ErrInconsistent = errors.New("inconsistent content")
)
