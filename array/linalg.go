package array

import (
	"gonum.org/v1/gonum/mat"

	"github.com/manifold-ml/manifold/internal/array"
)

// Einsum contracts operands following an Einstein summation spec with an
// explicit output, for example "...j,...jk,...k->..." or "ij,jk->ik".
func Einsum(spec string, operands ...*Array) *Array {
	return array.Einsum(spec, operands...)
}

// MatMul multiplies the last two axes of the operands, broadcasting any
// leading batch axes.
func MatMul(a, b *Array) *Array {
	return array.MatMul(a, b)
}

// Matvec applies matrices to vectors over the last axes, broadcasting
// any leading batch axes.
func Matvec(m, v *Array) *Array {
	return array.Matvec(m, v)
}

// Inv inverts the matrices in the last two axes. Singular input panics.
func Inv(a *Array) *Array {
	return array.Inv(a)
}

// Dot contracts two equally shaped arrays to a scalar.
func Dot(a, b *Array) float64 {
	return array.Dot(a, b)
}

// Stack joins arrays of equal shape along a new axis.
func Stack(arrays []*Array, axis int) *Array {
	return array.Stack(arrays, axis)
}

// Concat joins arrays along an existing axis.
func Concat(arrays []*Array, axis int) *Array {
	return array.Concat(arrays, axis)
}

// AsDense views a 2D array as a gonum matrix sharing the same backing
// data.
func AsDense(a *Array) *mat.Dense {
	return array.AsDense(a)
}

// FromDense copies a gonum matrix into a 2D array.
func FromDense(d mat.Matrix) *Array {
	return array.FromDense(d)
}
