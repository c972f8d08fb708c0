package build

import "errors"

var (
	// ErrArgument marks a wrong argument count or an unknown architecture tag.
	ErrArgument = errors.New("invalid arguments")
	// ErrMissingFile marks an expected source file that is absent at the point of use.
	ErrMissingFile = errors.New("missing file")
	// ErrIO marks any other read, write or create failure.
	ErrIO = errors.New("i/o failure")
)
