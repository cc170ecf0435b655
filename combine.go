package hvec

// Op is a binary law applied by Combine after both operands are converted to R.
type Op[R Number] func(a, b Vec[R]) Vec[R]

// Combine converts a and b to the result type R and applies op.
//
// Promotion rule: every element is converted with R(x). Converting floats to an
// integer R truncates toward zero; converting to float32 rounds to nearest.
// Callers pick R explicitly, so the precision trade-off is visible at the call site.
func Combine[R, A, B Number](a Vec[A], b Vec[B], op Op[R]) (Vec[R], error) {
	if op == nil {
		return Vec[R]{}, ErrNilOp
	}
	return op(Convert[R](a), Convert[R](b)), nil
}

// CrossOp is the 3D cross product. The result has W = 0.
func CrossOp[R Number](a, b Vec[R]) Vec[R] { return a.Cross(b) }

// AddOp adds all four elements.
func AddOp[R Number](a, b Vec[R]) Vec[R] { return a.Add(b) }

// SubOp subtracts all four elements.
func SubOp[R Number](a, b Vec[R]) Vec[R] { return a.Sub(b) }

// HadamardOp multiplies all four elements pairwise.
func HadamardOp[R Number](a, b Vec[R]) Vec[R] {
	return Vec[R]{e: [Size]R{a.e[0] * b.e[0], a.e[1] * b.e[1], a.e[2] * b.e[2], a.e[3] * b.e[3]}}
}

// OpNames lists the names OpByName accepts.
var OpNames = []string{"cross", "add", "sub", "hadamard"}

// OpByName returns a built-in op by its stable name.
func OpByName[R Number](name string) (Op[R], error) {
	switch name {
	case "cross":
		return CrossOp[R], nil
	case "add":
		return AddOp[R], nil
	case "sub":
		return SubOp[R], nil
	case "hadamard":
		return HadamardOp[R], nil
	default:
		return nil, &ErrUnknownOp{Name: name}
	}
}

// CrossPromote is the cross product between vectors of mixed element types.
//
// Both operands are promoted to float64. This is lossless for integers up to
// 32 bits, for float32 and float64, and for 64-bit integers with magnitude at
// most 2^53.
func CrossPromote[A, B Number](a Vec[A], b Vec[B]) Vec[float64] {
	return Convert[float64](a).Cross(Convert[float64](b))
}
