package generate

import "errors"

// ErrUsage marks invalid command-line arguments.
var ErrUsage = errors.New("invalid arguments")
