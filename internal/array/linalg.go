package array

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/manifold-ml/manifold/internal/parallel"
)

// parCfg drives the batch-axis fan-out of the linear-algebra kernels.
var parCfg = parallel.DefaultConfig()

// matrixBatch describes the leading batch block of a stack of matrices.
type matrixBatch struct {
	batch   Shape
	rows    int
	cols    int
	strides []int // broadcast strides addressing each matrix start
}

func splitMatrixBatch(name string, a *Array, outBatch Shape) matrixBatch {
	ndim := len(a.shape)
	if ndim < 2 {
		panic(fmt.Sprintf("%s: need at least 2 axes, got shape %v", name, a.shape))
	}
	b := matrixBatch{
		batch: a.shape[:ndim-2],
		rows:  a.shape[ndim-2],
		cols:  a.shape[ndim-1],
	}
	full := broadcastStrides(b.batch, outBatch)
	b.strides = full
	return b
}

// MatMul multiplies stacks of matrices: [..., m, k] by [..., k, n] gives
// [..., m, n], broadcasting the batch axes. Each matrix product is
// delegated to gonum.
//
// Example:
//
//	a := array.Zeros(array.Shape{10, 3, 4})
//	b := array.Zeros(array.Shape{4, 5})
//	c := array.MatMul(a, b) // shape [10, 3, 5]
func MatMul(a, b *Array) *Array {
	aNDim, bNDim := len(a.shape), len(b.shape)
	if aNDim < 2 || bNDim < 2 {
		panic(fmt.Sprintf("matmul: need at least 2 axes, got shapes %v and %v", a.shape, b.shape))
	}
	m, ka := a.shape[aNDim-2], a.shape[aNDim-1]
	kb, n := b.shape[bNDim-2], b.shape[bNDim-1]
	if ka != kb {
		panic(fmt.Sprintf("matmul: inner dimensions differ: %v vs %v", a.shape, b.shape))
	}

	outBatch, _, err := BroadcastShapes(a.shape[:aNDim-2], b.shape[:bNDim-2])
	if err != nil {
		panic(fmt.Sprintf("matmul: %v", err))
	}
	ab := splitMatrixBatch("matmul", a, outBatch)
	bb := splitMatrixBatch("matmul", b, outBatch)

	outShape := append(outBatch.Clone(), m, n)
	out := newDense(outShape)
	outStrides := outBatch.ComputeStrides()

	nb := outBatch.NumElements()
	parallel.For(nb, func(i int) {
		aOff := flatIndex(i, outStrides, ab.strides) * ab.rows * ab.cols
		bOff := flatIndex(i, outStrides, bb.strides) * bb.rows * bb.cols
		am := mat.NewDense(m, ka, a.data[aOff:aOff+m*ka])
		bm := mat.NewDense(kb, n, b.data[bOff:bOff+kb*n])
		cm := mat.NewDense(m, n, out.data[i*m*n:(i+1)*m*n])
		cm.Mul(am, bm)
	}, parCfg)
	return out
}

// Matvec multiplies stacks of matrices by stacks of vectors:
// [..., m, n] by [..., n] gives [..., m], broadcasting the batch axes.
func Matvec(m, v *Array) *Array {
	if len(v.shape) < 1 {
		panic(fmt.Sprintf("matvec: vector operand needs at least 1 axis, got shape %v", v.shape))
	}
	return MatMul(m, v.ExpandDims(-1)).Squeeze(-1)
}

// Inv inverts stacks of square matrices: [..., n, n] elementwise over the
// batch. Panics when a matrix is exactly singular; badly conditioned
// matrices invert with whatever precision the factorization allows.
func Inv(a *Array) *Array {
	ndim := len(a.shape)
	if ndim < 2 || a.shape[ndim-2] != a.shape[ndim-1] {
		panic(fmt.Sprintf("inv: need square matrices, got shape %v", a.shape))
	}
	n := a.shape[ndim-1]
	out := newDense(a.shape.Clone())

	nb := a.shape[:ndim-2].NumElements()
	parallel.For(nb, func(i int) {
		src := mat.NewDense(n, n, a.data[i*n*n:(i+1)*n*n])
		dst := mat.NewDense(n, n, out.data[i*n*n:(i+1)*n*n])
		if err := dst.Inverse(src); err != nil {
			// A finite condition number is a precision warning, not a
			// failure. Singular matrices report an infinite condition.
			cond, conditioned := err.(mat.Condition)
			if !conditioned || math.IsInf(float64(cond), 1) {
				panic(fmt.Sprintf("inv: %v", err))
			}
		}
	}, parCfg)
	return out
}

// AsDense wraps a 2-D array as a gonum matrix sharing the same storage.
func AsDense(a *Array) *mat.Dense {
	if len(a.shape) != 2 {
		panic(fmt.Sprintf("asdense: need a 2D array, got shape %v", a.shape))
	}
	return mat.NewDense(a.shape[0], a.shape[1], a.data)
}

// FromDense copies a gonum matrix into a fresh 2-D array.
func FromDense(d mat.Matrix) *Array {
	r, c := d.Dims()
	out := newDense(Shape{r, c})
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = d.At(i, j)
		}
	}
	return out
}
