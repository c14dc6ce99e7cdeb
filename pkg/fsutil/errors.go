package fsutil

import "errors"

// ErrEmptyOutputPath is returned when a write is requested with no output path.
var ErrEmptyOutputPath = errors.New("output path is empty")
