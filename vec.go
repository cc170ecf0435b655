package hvec

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types a Vec can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

const (
	// Dimension is the number of logical components (X, Y, Z).
	Dimension = 3

	// Size is the number of stored elements: the logical components plus W.
	Size = Dimension + 1

	// IndexW is the index of the homogeneous coordinate.
	IndexW = Dimension
)

// Vec is a 3D vector with a homogeneous coordinate W at index 3.
//
// The zero value is the zero direction (0, 0, 0, 0).
type Vec[T Number] struct {
	e [Size]T
}

// New constructs a direction vector from exactly three elements. W is 0.
//
// Any other element count returns an *ErrArity.
func New[T Number](elems ...T) (Vec[T], error) {
	if len(elems) != Dimension {
		return Vec[T]{}, &ErrArity{Expected: Dimension, Actual: len(elems)}
	}
	return Vec[T]{e: [Size]T{elems[0], elems[1], elems[2], 0}}, nil
}

// MustNew is like New but panics on an arity error.
func MustNew[T Number](elems ...T) Vec[T] {
	v, err := New(elems...)
	if err != nil {
		panic(err)
	}
	return v
}

// V3 constructs a direction vector (W = 0).
func V3[T Number](x, y, z T) Vec[T] { return Vec[T]{e: [Size]T{x, y, z, 0}} }

// Point constructs a position vector (W = 1).
func Point[T Number](x, y, z T) Vec[T] { return Vec[T]{e: [Size]T{x, y, z, 1}} }

// Homogeneous constructs a vector with an explicit W.
func Homogeneous[T Number](x, y, z, w T) Vec[T] { return Vec[T]{e: [Size]T{x, y, z, w}} }

// FromArray constructs a vector from its four stored elements.
func FromArray[T Number](a [Size]T) Vec[T] { return Vec[T]{e: a} }

// At returns the element at index i. Index 3 is W.
func (v Vec[T]) At(i int) (T, error) {
	if i < 0 || i >= Size {
		var zero T
		return zero, &ErrOutOfBounds{Index: i, Len: Size}
	}
	return v.e[i], nil
}

// MustAt is like At but panics on an out-of-bounds index.
func (v Vec[T]) MustAt(i int) T {
	x, err := v.At(i)
	if err != nil {
		panic(err)
	}
	return x
}

// X returns the element at index 0.
func (v Vec[T]) X() T { return v.e[0] }

// Y returns the element at index 1.
func (v Vec[T]) Y() T { return v.e[1] }

// Z returns the element at index 2.
func (v Vec[T]) Z() T { return v.e[2] }

// W returns the homogeneous coordinate (index 3): 0 for directions, 1 for points.
func (v Vec[T]) W() T { return v.e[IndexW] }

// Array returns a copy of the stored elements.
func (v Vec[T]) Array() [Size]T { return v.e }

// Len returns the number of stored elements, which is always Size.
func (v Vec[T]) Len() int { return Size }

// Dim returns the logical dimension, which is always Dimension.
func (v Vec[T]) Dim() int { return Dimension }

// WithW returns a copy of v with W replaced.
func (v Vec[T]) WithW(w T) Vec[T] {
	v.e[IndexW] = w
	return v
}

// IsPoint reports whether W is non-zero.
func (v Vec[T]) IsPoint() bool { return v.e[IndexW] != 0 }

// Add returns the element-wise sum, including W.
func (v Vec[T]) Add(o Vec[T]) Vec[T] {
	return Vec[T]{e: [Size]T{v.e[0] + o.e[0], v.e[1] + o.e[1], v.e[2] + o.e[2], v.e[3] + o.e[3]}}
}

// Sub returns the element-wise difference, including W.
func (v Vec[T]) Sub(o Vec[T]) Vec[T] {
	return Vec[T]{e: [Size]T{v.e[0] - o.e[0], v.e[1] - o.e[1], v.e[2] - o.e[2], v.e[3] - o.e[3]}}
}

// Scale multiplies the logical components by s. W is kept.
func (v Vec[T]) Scale(s T) Vec[T] {
	return Vec[T]{e: [Size]T{v.e[0] * s, v.e[1] * s, v.e[2] * s, v.e[3]}}
}

// Dot returns the dot product of the logical components.
func (v Vec[T]) Dot(o Vec[T]) T {
	return v.e[0]*o.e[0] + v.e[1]*o.e[1] + v.e[2]*o.e[2]
}

// Cross returns the 3D cross product. The result is a direction (W = 0).
func (v Vec[T]) Cross(o Vec[T]) Vec[T] {
	return Vec[T]{e: [Size]T{
		v.e[1]*o.e[2] - v.e[2]*o.e[1],
		v.e[2]*o.e[0] - v.e[0]*o.e[2],
		v.e[0]*o.e[1] - v.e[1]*o.e[0],
		0,
	}}
}

// Equal reports whether all four elements are equal.
func (v Vec[T]) Equal(o Vec[T]) bool { return v.e == o.e }

// Convert converts every element of v to R using Go conversion semantics.
// Float to integer conversion truncates toward zero.
func Convert[R, T Number](v Vec[T]) Vec[R] {
	return Vec[R]{e: [Size]R{R(v.e[0]), R(v.e[1]), R(v.e[2]), R(v.e[3])}}
}

// Norm returns the Euclidean length of the logical components.
func Norm[T Number](v Vec[T]) float64 {
	x, y, z := float64(v.e[0]), float64(v.e[1]), float64(v.e[2])
	return math.Sqrt(x*x + y*y + z*z)
}

// Normalize returns v scaled to unit length as float64. W is carried over.
// The zero vector stays zero.
func Normalize[T Number](v Vec[T]) Vec[float64] {
	f := Convert[float64](v)
	n := Norm(f)
	if n == 0 {
		return f
	}
	return f.Scale(1 / n)
}

// Lerp interpolates the logical components between a and b. W is taken from a.
func Lerp(a, b Vec[float64], t float64) Vec[float64] {
	return Vec[float64]{e: [Size]float64{
		a.e[0] + (b.e[0]-a.e[0])*t,
		a.e[1] + (b.e[1]-a.e[1])*t,
		a.e[2] + (b.e[2]-a.e[2])*t,
		a.e[3],
	}}
}
