package docs

import (
	"errors"
)

var (
	ErrUnsupportedKind = errors.New("unsupported type")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidRange    = errors.New("invalid cell range")
	ErrNotANumber      = errors.New("not a number")
	ErrInvalidResource = errors.New("invalid resource id")
	ErrConflict        = errors.New("version conflict")
	ErrNotFound        = errors.New("not found")
)

// IsInputError reports whether err was caused by user input. Input errors are reported
// and the prompt loop carries on; anything else ends the run.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedKind) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrNotANumber) ||
		errors.Is(err, ErrInvalidResource)
}
