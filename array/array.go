// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"math/rand"

	"github.com/manifold-ml/manifold/internal/array"
)

// Type aliases for public API

// Array is a dense row-major array of float64 values.
type Array = array.Array

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = array.Shape

// Default tolerances for approximate comparisons.
var (
	Atol = array.Atol
	Rtol = array.Rtol
)

// Of builds a shape from dimensions.
func Of(dims ...int) Shape {
	return array.Of(dims...)
}

// BroadcastShapes returns the broadcast of two shapes and whether any
// stretching is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return array.BroadcastShapes(a, b)
}

// BroadcastAll returns the broadcast of any number of shapes.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	return array.BroadcastAll(shapes...)
}

// FromSlice copies data into a new array of the given shape.
func FromSlice(data []float64, shape Shape) (*Array, error) {
	return array.FromSlice(data, shape)
}

// MustFromSlice is FromSlice panicking on error, for literals in tests
// and examples.
func MustFromSlice(data []float64, shape Shape) *Array {
	return array.MustFromSlice(data, shape)
}

// FromValues builds a 1D array from the values.
func FromValues(values ...float64) *Array {
	return array.FromValues(values...)
}

// Scalar builds a 0-dimensional array holding one value.
func Scalar(v float64) *Array {
	return array.Scalar(v)
}

// FromSparse scatters coordinate-indexed values into a dense array.
// Duplicate coordinates accumulate.
func FromSparse(indices [][]int, values []float64, shape Shape) (*Array, error) {
	return array.FromSparse(indices, values, shape)
}

// Zeros returns an array of zeros.
func Zeros(shape Shape) *Array {
	return array.Zeros(shape)
}

// Ones returns an array of ones.
func Ones(shape Shape) *Array {
	return array.Ones(shape)
}

// Full returns an array filled with one value.
func Full(shape Shape, value float64) *Array {
	return array.Full(shape, value)
}

// Eye returns the n×n identity matrix.
func Eye(n int) *Array {
	return array.Eye(n)
}

// Arange returns consecutive integers in [start, end) as a 1D array.
func Arange(start, end float64) *Array {
	return array.Arange(start, end)
}

// Linspace returns num evenly spaced values over [start, stop].
func Linspace(start, stop float64, num int) *Array {
	return array.Linspace(start, stop, num)
}

// Randn samples standard normal values. A nil rng uses a time-seeded
// source.
func Randn(shape Shape, rng *rand.Rand) *Array {
	return array.Randn(shape, rng)
}

// Rand samples uniform values in [0, 1). A nil rng uses a time-seeded
// source.
func Rand(shape Shape, rng *rand.Rand) *Array {
	return array.Rand(shape, rng)
}

// Uniform samples uniform values in [low, high). A nil rng uses a
// time-seeded source.
func Uniform(shape Shape, low, high float64, rng *rand.Rand) *Array {
	return array.Uniform(shape, low, high, rng)
}

// AllClose compares two arrays elementwise within the default
// tolerances.
func AllClose(a, b *Array) bool {
	return array.AllClose(a, b)
}

// AllCloseTol compares two arrays elementwise within the given relative
// and absolute tolerances.
func AllCloseTol(a, b *Array, rtol, atol float64) bool {
	return array.AllCloseTol(a, b, rtol, atol)
}
