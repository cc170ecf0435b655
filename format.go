package hvec

import (
	"fmt"
	"strings"
)

// String renders the four stored elements in index order separated by single
// spaces, e.g. "1 2 3 0". Floats use the shortest representation that round-trips.
func (v Vec[T]) String() string {
	var b strings.Builder
	for i, x := range v.e {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, x)
	}
	return b.String()
}

// GoString implements fmt.GoStringer.
func (v Vec[T]) GoString() string {
	return fmt.Sprintf("hvec.Homogeneous(%v, %v, %v, %v)", v.e[0], v.e[1], v.e[2], v.e[3])
}
