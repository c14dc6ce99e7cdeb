package scaffolder

import "errors"

// ErrEmptyOutputDirectory is returned when scaffolding is requested with no
// output directory.
var ErrEmptyOutputDirectory = errors.New("output directory is empty")
