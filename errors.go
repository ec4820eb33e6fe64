package pathkit

import "errors"

// Sentinel errors returned by mutating operations. Wrapped causes stay
// reachable through errors.Is and errors.Unwrap.
var (
	// ErrNotFound reports a path that must exist but does not.
	ErrNotFound = errors.New("path not found")

	// ErrIsDirectory reports a file operation attempted on a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrNotDirectory reports a directory operation attempted on a file.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrConflict reports an existing destination when overwrite was not
	// requested.
	ErrConflict = errors.New("destination already exists")
)
