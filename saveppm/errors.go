package saveppm

import (
	"errors"
	"fmt"
)

// ErrNilImage is returned when Save is called with a nil image.
var ErrNilImage = errors.New("saveppm: nil image")

// SaveError records the operation and blob name of a failed save or load.
//
// The underlying error can be accessed via errors.Unwrap.
type SaveError struct {
	Op   string
	Name string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saveppm: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
