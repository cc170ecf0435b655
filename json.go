package hvec

import "encoding/json"

// MarshalJSON encodes v as a four-element array [x, y, z, w].
func (v Vec[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.e)
}

// UnmarshalJSON accepts [x, y, z] (W = 0) or [x, y, z, w].
func (v *Vec[T]) UnmarshalJSON(data []byte) error {
	var elems []T
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	switch len(elems) {
	case Dimension:
		*v = V3(elems[0], elems[1], elems[2])
	case Size:
		*v = Homogeneous(elems[0], elems[1], elems[2], elems[3])
	default:
		return &ErrArity{Expected: Dimension, Actual: len(elems)}
	}
	return nil
}
