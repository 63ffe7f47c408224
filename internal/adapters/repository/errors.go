package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound    = errors.New("data file not found")
	ErrRead        = errors.New("read data file")
	ErrDecode      = errors.New("decode data file")
	ErrInvalidName = errors.New("invalid data file name")
)
