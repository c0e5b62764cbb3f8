package array

import "fmt"

// Shape holds the dimensions of an array, outermost axis first.
type Shape []int

// Of builds a Shape from dimension values.
func Of(dims ...int) Shape {
	s := make(Shape, len(dims))
	copy(s, dims)
	return s
}

// NumElements returns the total element count. A zero-length shape is a
// scalar and counts as 1.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate reports an error if any dimension is not positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at axis %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides returns row-major strides: stride[i] is the product of all
// dimensions after axis i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// normAxis converts a possibly negative axis to its canonical index and
// panics when it falls outside [-ndim, ndim).
func normAxis(axis, ndim int) int {
	orig := axis
	if axis < 0 {
		axis += ndim
	}
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("axis %d out of range for %dD array", orig, ndim))
	}
	return axis
}

// BroadcastShapes applies NumPy-style broadcasting rules to two shapes.
//
// Aligned from the right, two dimensions are compatible when they are equal
// or one of them is 1; missing dimensions count as 1. Returns the combined
// shape, a flag indicating whether any stretching is needed, and an error
// when the shapes are incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(5)    + (2, 5) → (2, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	ndim := max(len(a), len(b))
	result := make(Shape, ndim)
	stretched := false

	for i := 0; i < ndim; i++ {
		da, db := 1, 1
		if j := len(a) - 1 - i; j >= 0 {
			da = a[j]
		}
		if j := len(b) - 1 - i; j >= 0 {
			db = b[j]
		}

		switch {
		case da == db:
			result[ndim-1-i] = da
		case da == 1:
			result[ndim-1-i] = db
			stretched = true
		case db == 1:
			result[ndim-1-i] = da
			stretched = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (axis %d: %d vs %d)",
				a, b, ndim-1-i, da, db)
		}
	}

	return result, stretched, nil
}

// BroadcastAll folds BroadcastShapes over any number of shapes.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	out := Shape{}
	for _, s := range shapes {
		combined, _, err := BroadcastShapes(out, s)
		if err != nil {
			return nil, err
		}
		out = combined
	}
	return out, nil
}
