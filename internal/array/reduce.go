package array

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Sum reduces along the given axis (negative axes count from the end).
// With keepDim the reduced axis stays with size 1, otherwise it is removed.
//
// Example:
//
//	x := array.Ones(array.Shape{2, 3, 4})
//	y := x.Sum(-1, true)  // shape [2, 3, 1]
//	z := x.Sum(-1, false) // shape [2, 3]
func (a *Array) Sum(axis int, keepDim bool) *Array {
	axis = normAxis(axis, len(a.shape))

	var outShape Shape
	if keepDim {
		outShape = a.shape.Clone()
		outShape[axis] = 1
	} else {
		outShape = make(Shape, 0, len(a.shape)-1)
		for i, dim := range a.shape {
			if i != axis {
				outShape = append(outShape, dim)
			}
		}
	}

	out := newDense(outShape)
	// outer runs over axes before the reduced one, inner over axes after.
	strides := a.shape.ComputeStrides()
	outer := 1
	for i := 0; i < axis; i++ {
		outer *= a.shape[i]
	}
	inner := strides[axis]
	n := a.shape[axis]

	for o := 0; o < outer; o++ {
		base := o * n * inner
		for in := 0; in < inner; in++ {
			acc := 0.0
			for k := 0; k < n; k++ {
				acc += a.data[base+k*inner+in]
			}
			out.data[o*inner+in] = acc
		}
	}
	return out
}

// Mean reduces along the given axis by averaging.
func (a *Array) Mean(axis int, keepDim bool) *Array {
	axis = normAxis(axis, len(a.shape))
	out := a.Sum(axis, keepDim)
	floats.Scale(1/float64(a.shape[axis]), out.data)
	return out
}

// SumAll returns the sum over every element.
func (a *Array) SumAll() float64 {
	return floats.Sum(a.data)
}

// MeanAll returns the mean over every element.
func (a *Array) MeanAll() float64 {
	return floats.Sum(a.data) / float64(len(a.data))
}

// MaxAll returns the largest element. Panics on an empty array.
func (a *Array) MaxAll() float64 {
	return floats.Max(a.data)
}

// MinAll returns the smallest element. Panics on an empty array.
func (a *Array) MinAll() float64 {
	return floats.Min(a.data)
}

// Dot returns the inner product of two 1-D arrays of equal length.
func Dot(a, b *Array) float64 {
	if len(a.shape) != 1 || len(b.shape) != 1 || a.shape[0] != b.shape[0] {
		panic(fmt.Sprintf("dot: need equal-length 1D arrays, got %v and %v", a.shape, b.shape))
	}
	return floats.Dot(a.data, b.data)
}
