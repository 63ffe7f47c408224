package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrRosterRead     = errors.New("read roster")
	ErrRosterDecode   = errors.New("decode roster")
	ErrMalformedInput = errors.New("malformed input")
	ErrWrite          = errors.New("write ranking")
)
