package geometry

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/array"
)

// GroupAction is a left action of a group on a space. Act applies a group
// element to a point and InverseElement inverts an element; both accept
// batches of elements and points.
type GroupAction interface {
	Act(groupElem, point *array.Array) *array.Array
	InverseElement(groupElem *array.Array) *array.Array
}

// CongruenceAction acts on square matrices by congruence: an invertible
// matrix g sends a point p to g p g^T.
type CongruenceAction struct{}

// Act applies the congruence g p g^T.
func (CongruenceAction) Act(groupElem, point *array.Array) *array.Array {
	return array.MatMul(array.MatMul(groupElem, point), groupElem.TransposeLast2())
}

// InverseElement inverts the group element as a matrix.
func (CongruenceAction) InverseElement(groupElem *array.Array) *array.Array {
	return array.Inv(groupElem)
}

// PermutationAction acts on square matrices by congruence with permutation
// matrices. Group elements are permutations in one-line notation: the
// element maps node i to the value stored at position i.
type PermutationAction struct{}

// Act relabels the rows and columns of the point by the permutation.
func (PermutationAction) Act(groupElem, point *array.Array) *array.Array {
	mats, err := PermutationMatrixFromVector(groupElem)
	if err != nil {
		panic(fmt.Sprintf("act: %v", err))
	}
	return CongruenceAction{}.Act(mats, point)
}

// InverseElement inverts the permutation.
func (PermutationAction) InverseElement(groupElem *array.Array) *array.Array {
	return InversePermutation(groupElem)
}

// RowPermutationAction acts on matrices by permuting rows only: the point
// is multiplied on the left by the transposed permutation matrix.
type RowPermutationAction struct{}

// Act permutes the rows of the point.
func (RowPermutationAction) Act(groupElem, point *array.Array) *array.Array {
	mats, err := PermutationMatrixFromVector(groupElem)
	if err != nil {
		panic(fmt.Sprintf("act: %v", err))
	}
	return array.MatMul(mats.TransposeLast2(), point)
}

// InverseElement inverts the permutation.
func (RowPermutationAction) InverseElement(groupElem *array.Array) *array.Array {
	return InversePermutation(groupElem)
}

// InversePermutation inverts permutations given in one-line notation,
// elementwise over an optional batch of leading axes: if the input sends i
// to g[i], the output sends g[i] back to i.
func InversePermutation(perm *array.Array) *array.Array {
	n := perm.Shape()[perm.NDim()-1]
	out := array.Zeros(perm.Shape())
	src := perm.Data()
	dst := out.Data()
	for b := 0; b < perm.NumElements()/n; b++ {
		row := src[b*n : (b+1)*n]
		inv := dst[b*n : (b+1)*n]
		for i, v := range row {
			j := int(v)
			if j < 0 || j >= n {
				panic(fmt.Sprintf("inverse permutation: value %g out of range for length %d", v, n))
			}
			inv[j] = float64(i)
		}
	}
	return out
}

// PermutationMatrixFromVector builds permutation matrices from one-line
// notation: row i of the matrix for a permutation g carries a one in
// column g[i]. The input is a single vector of length n or a batch of
// them, yielding shape [n, n] or [batch, n, n].
func PermutationMatrixFromVector(perm *array.Array) (*array.Array, error) {
	switch perm.NDim() {
	case 1:
		n := perm.Shape()[0]
		indices := make([][]int, n)
		for i, v := range perm.Data() {
			indices[i] = []int{i, int(v)}
		}
		return array.FromSparse(indices, array.Ones(array.Shape{n}).Data(), array.Shape{n, n})
	case 2:
		b, n := perm.Shape()[0], perm.Shape()[1]
		indices := make([][]int, 0, b*n)
		data := perm.Data()
		for k := 0; k < b; k++ {
			for i := 0; i < n; i++ {
				indices = append(indices, []int{k, i, int(data[k*n+i])})
			}
		}
		return array.FromSparse(indices, array.Ones(array.Shape{b * n}).Data(), array.Shape{b, n, n})
	default:
		return nil, fmt.Errorf("permutations must be a vector or a batch of vectors, got %d axes", perm.NDim())
	}
}
