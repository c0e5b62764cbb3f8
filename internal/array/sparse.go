package array

import "fmt"

// FromSparse builds a dense array from coordinate-format triplets: entry k
// writes values[k] at indices[k]. Every index tuple must be full rank for
// the target shape. Duplicate coordinates accumulate, matching the usual
// COO convention.
//
// Example:
//
//	// one-hot rows of a 3x3 permutation matrix
//	a, _ := array.FromSparse([][]int{{0, 1}, {1, 0}, {2, 2}}, []float64{1, 1, 1}, array.Shape{3, 3})
func FromSparse(indices [][]int, values []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(indices) != len(values) {
		return nil, fmt.Errorf("got %d index tuples for %d values", len(indices), len(values))
	}

	out := newDense(shape.Clone())
	strides := shape.ComputeStrides()
	for k, idx := range indices {
		if len(idx) != len(shape) {
			return nil, fmt.Errorf("index tuple %d has %d coordinates for a %dD target", k, len(idx), len(shape))
		}
		offset := 0
		for d, i := range idx {
			if i < 0 || i >= shape[d] {
				return nil, fmt.Errorf("index tuple %d out of bounds on axis %d: %d (size %d)", k, d, i, shape[d])
			}
			offset += i * strides[d]
		}
		out.data[offset] += values[k]
	}
	return out, nil
}
