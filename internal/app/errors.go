package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownEvent = errors.New("unknown ranking event")
)
