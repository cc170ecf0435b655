package hvec

import (
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch is matched by every construction error caused by a
	// wrong element count.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrIndexOutOfRange is matched by every out-of-bounds element access.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNilOp is returned when Combine is called without an op.
	ErrNilOp = errors.New("combine op is nil")
)

// ErrArity indicates a vector was constructed from the wrong number of elements.
//
// errors.Is(err, ErrArityMismatch) reports true for every ErrArity.
type ErrArity struct {
	Expected int
	Actual   int
}

func (e *ErrArity) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d elements, got %d", e.Expected, e.Actual)
}

func (e *ErrArity) Unwrap() error { return ErrArityMismatch }

// ErrOutOfBounds indicates an element index outside [0, Len).
//
// errors.Is(err, ErrIndexOutOfRange) reports true for every ErrOutOfBounds.
type ErrOutOfBounds struct {
	Index int
	Len   int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("index out of range: %d not in [0, %d)", e.Index, e.Len)
}

func (e *ErrOutOfBounds) Unwrap() error { return ErrIndexOutOfRange }

// ErrUnknownOp indicates an op name that OpByName does not know.
type ErrUnknownOp struct {
	Name string
}

func (e *ErrUnknownOp) Error() string {
	return fmt.Sprintf("unknown combine op: %q", e.Name)
}
