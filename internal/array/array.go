// Package array implements dense float64 arrays with NumPy-style batched
// semantics: arbitrary leading batch axes, broadcasting on elementwise
// operations, axis reductions, einsum contractions, and batched linear
// algebra backed by gonum.
//
// Arrays own contiguous row-major storage. Operations return fresh arrays
// and never alias their inputs unless documented otherwise. Shape mismatches
// panic with a descriptive message; panics are the array layer's native
// error and are not used anywhere above it.
package array

import (
	"fmt"
	"strings"
)

// Array is a dense row-major float64 array.
type Array struct {
	data  []float64
	shape Shape
}

// FromSlice creates an array that copies data into the given shape.
//
// Example:
//
//	a, err := array.FromSlice([]float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Array{data: buf, shape: shape.Clone()}, nil
}

// MustFromSlice is FromSlice panicking on error. Meant for literals in tests
// and examples.
func MustFromSlice(data []float64, shape Shape) *Array {
	a, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return a
}

// FromValues creates a 1-D array from the given values.
func FromValues(values ...float64) *Array {
	buf := make([]float64, len(values))
	copy(buf, values)
	return &Array{data: buf, shape: Shape{len(values)}}
}

// Scalar creates a 0-D array holding a single value.
func Scalar(v float64) *Array {
	return &Array{data: []float64{v}, shape: Shape{}}
}

// Shape returns the array's shape. The caller must not modify it.
func (a *Array) Shape() Shape {
	return a.shape
}

// NDim returns the number of axes.
func (a *Array) NDim() int {
	return len(a.shape)
}

// NumElements returns the total element count.
func (a *Array) NumElements() int {
	return len(a.data)
}

// Data returns the backing slice (zero-copy).
//
// WARNING: writes through the returned slice modify the array.
func (a *Array) Data() []float64 {
	return a.data
}

// Item returns the value of a single-element array and panics otherwise.
func (a *Array) Item() float64 {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("Item() needs a single-element array, got shape %v", a.shape))
	}
	return a.data[0]
}

// At returns the element at the given indices. Panics on rank mismatch or
// out-of-bounds indices.
//
// Example:
//
//	a := array.Zeros(array.Shape{3, 4})
//	v := a.At(1, 2) // row 1, column 2
func (a *Array) At(indices ...int) float64 {
	return a.data[a.offsetOf(indices)]
}

// Set writes the element at the given indices. Panics on rank mismatch or
// out-of-bounds indices.
func (a *Array) Set(value float64, indices ...int) {
	a.data[a.offsetOf(indices)] = value
}

func (a *Array) offsetOf(indices []int) int {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(a.shape), len(indices)))
	}
	offset := 0
	strides := a.shape.ComputeStrides()
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for axis %d (size %d)", idx, i, a.shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	buf := make([]float64, len(a.data))
	copy(buf, a.data)
	return &Array{data: buf, shape: a.shape.Clone()}
}

// Equal reports exact elementwise equality of shape and data.
func (a *Array) Equal(other *Array) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// String returns a short human-readable description.
func (a *Array) String() string {
	if len(a.data) <= 8 {
		vals := make([]string, len(a.data))
		for i, v := range a.data {
			vals[i] = fmt.Sprintf("%g", v)
		}
		return fmt.Sprintf("Array%v [%s]", a.shape, strings.Join(vals, " "))
	}
	return fmt.Sprintf("Array%v (%d elements)", a.shape, len(a.data))
}

// newDense allocates a zeroed array without copying the shape. Internal
// helper for kernels that already own a fresh shape slice.
func newDense(shape Shape) *Array {
	return &Array{data: make([]float64, shape.NumElements()), shape: shape}
}
