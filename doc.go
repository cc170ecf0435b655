// Package hvec provides a small fixed-arity vector value type for Go.
//
// A Vec holds three logical components (X, Y, Z) plus the homogeneous
// coordinate W, so it always stores four elements. Vectors built from three
// values are directions and carry W = 0; Point builds positions with W = 1.
//
// # Quick Start
//
//	v1 := hvec.MustNew(1, 2, 3)                   // Vec[int], W = 0
//	v2 := hvec.MustNew[float32](4, 5, 6)          // Vec[float32]
//	v3 := hvec.CrossPromote(v1, v2)               // Vec[float64]{-3, 6, -3, 0}
//	fmt.Println(v1)                               // 1 2 3 0
//
// # Element Access
//
// At returns the element at index 0..3. Index 3 is W. Any other index
// returns an *ErrOutOfBounds that matches ErrIndexOutOfRange:
//
//	w, _ := v1.At(3)        // 0
//	_, err := v1.At(4)      // errors.Is(err, hvec.ErrIndexOutOfRange)
//
// # Combining Vectors
//
// Combine applies a pluggable Op to two vectors of possibly different element
// types. Both operands are converted to the result type R with Go conversion
// semantics before the op runs:
//
//	sum, _ := hvec.Combine[float64](v1, v2, hvec.AddOp[float64])
//	crs, _ := hvec.Combine[int](v1, v2, hvec.CrossOp[int]) // float inputs truncate
//
// CrossPromote is the default cross product between mixed element types. It
// always promotes to float64.
//
// # Value Semantics
//
// Vec is backed by a fixed-size array and has no mutating methods, so copies
// never alias and values are safe for concurrent use.
package hvec
