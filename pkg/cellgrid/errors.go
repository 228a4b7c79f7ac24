package cellgrid

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot indicates well-formed JSON that is not a sheet snapshot.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ErrInvalidAddress indicates a malformed cell address.
var ErrInvalidAddress = errors.New("invalid cell address")

// LoadError represents an error while loading serialized sheet content.
type LoadError struct {
	Format string // "snapshot" or "legacy"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error (%s): %v", e.Format, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
