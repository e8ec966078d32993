package lptable

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when an operation receives a sentinel
	// key or a configuration value outside its accepted range. The table is
	// left untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConcurrentModification is reported by an Iterator whose table was
	// structurally modified after the iterator was created. The table itself
	// remains usable.
	ErrConcurrentModification = errors.New("concurrent modification")
)
