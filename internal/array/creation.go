package array

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) *Array {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return newDense(shape.Clone())
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// Full creates an array filled with a constant.
func Full(shape Shape, value float64) *Array {
	out := Zeros(shape)
	for i := range out.data {
		out.data[i] = value
	}
	return out
}

// Eye creates an n by n identity matrix.
func Eye(n int) *Array {
	out := Zeros(Shape{n, n})
	for i := 0; i < n; i++ {
		out.data[i*n+i] = 1
	}
	return out
}

// Arange creates a 1-D array with values start, start+1, ... up to but not
// including end.
func Arange(start, end float64) *Array {
	n := int(end - start)
	if n <= 0 {
		panic("arange: end must be greater than start")
	}
	out := newDense(Shape{n})
	for i := range out.data {
		out.data[i] = start + float64(i)
	}
	return out
}

// Linspace creates a 1-D array of num evenly spaced values from start to
// stop inclusive. num must be at least 1; with num == 1 the single value is
// start.
func Linspace(start, stop float64, num int) *Array {
	if num < 1 {
		panic("linspace: num must be at least 1")
	}
	out := newDense(Shape{num})
	if num == 1 {
		out.data[0] = start
		return out
	}
	step := (stop - start) / float64(num-1)
	for i := range out.data {
		out.data[i] = start + float64(i)*step
	}
	return out
}

// ensureRNG returns rng, or a time-seeded source when rng is nil. Callers
// that need reproducibility inject their own *rand.Rand.
func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Randn creates an array of samples from the standard normal distribution,
// drawn from rng (time-seeded when nil).
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	a := array.Randn(array.Shape{100, 3}, rng)
func Randn(shape Shape, rng *rand.Rand) *Array {
	rng = ensureRNG(rng)
	out := Zeros(shape)
	for i := range out.data {
		out.data[i] = rng.NormFloat64()
	}
	return out
}

// Rand creates an array of samples uniform in [0, 1), drawn from rng
// (time-seeded when nil).
func Rand(shape Shape, rng *rand.Rand) *Array {
	rng = ensureRNG(rng)
	out := Zeros(shape)
	for i := range out.data {
		out.data[i] = rng.Float64()
	}
	return out
}

// Uniform creates an array of samples uniform in [low, high), drawn from rng
// (time-seeded when nil).
func Uniform(shape Shape, low, high float64, rng *rand.Rand) *Array {
	rng = ensureRNG(rng)
	out := Zeros(shape)
	for i := range out.data {
		out.data[i] = low + (high-low)*rng.Float64()
	}
	return out
}

// eps is the distance from 1.0 to the next float64.
var eps = math.Nextafter(1, 2) - 1

// Atol is the default absolute tolerance for numerical comparisons,
// derived from machine epsilon.
var Atol = 1e4 * eps

// Rtol is the default relative tolerance for numerical comparisons.
var Rtol = 1e-5

// AllClose reports whether a and b have equal shapes and elementwise
// |a-b| <= Atol + Rtol*|b|.
func AllClose(a, b *Array) bool {
	return AllCloseTol(a, b, Rtol, Atol)
}

// AllCloseTol is AllClose with explicit tolerances.
func AllCloseTol(a, b *Array, rtol, atol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		if math.IsNaN(a.data[i]) || math.IsNaN(b.data[i]) {
			return false
		}
		if math.Abs(a.data[i]-b.data[i]) > atol+rtol*math.Abs(b.data[i]) {
			return false
		}
	}
	return true
}
