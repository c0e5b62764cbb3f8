package geometry

import (
	"math/rand"

	"github.com/manifold-ml/manifold/internal/array"
)

// Space describes the point set a metric operates on: its intrinsic
// dimension, how many trailing axes one point occupies, and the shape of a
// single point. Batched inputs carry extra leading axes on top of Shape().
type Space interface {
	Dim() int
	PointNDim() int
	Shape() array.Shape
	RandomPoint(nSamples int, rng *rand.Rand) *array.Array
}

// Euclidean is the flat vector space of a given dimension. Points are
// vectors of shape [dim].
type Euclidean struct {
	dim int
}

// NewEuclidean creates the Euclidean space of the given dimension.
func NewEuclidean(dim int) *Euclidean {
	return &Euclidean{dim: dim}
}

// Dim returns the vector dimension.
func (s *Euclidean) Dim() int { return s.dim }

// PointNDim returns 1: points are vectors.
func (s *Euclidean) PointNDim() int { return 1 }

// Shape returns the shape of a single point.
func (s *Euclidean) Shape() array.Shape { return array.Shape{s.dim} }

// RandomPoint draws points with coordinates uniform in [-1, 1). A single
// sample has shape [dim], more samples gain a leading batch axis.
func (s *Euclidean) RandomPoint(nSamples int, rng *rand.Rand) *array.Array {
	if nSamples == 1 {
		return array.Uniform(s.Shape(), -1, 1, rng)
	}
	return array.Uniform(array.Shape{nSamples, s.dim}, -1, 1, rng)
}

// MatrixSpace is the flat space of m by n real matrices. Points are
// matrices of shape [m, n].
type MatrixSpace struct {
	m, n int
}

// NewMatrixSpace creates the space of m by n matrices.
func NewMatrixSpace(m, n int) *MatrixSpace {
	return &MatrixSpace{m: m, n: n}
}

// Dim returns the intrinsic dimension m*n.
func (s *MatrixSpace) Dim() int { return s.m * s.n }

// PointNDim returns 2: points are matrices.
func (s *MatrixSpace) PointNDim() int { return 2 }

// Shape returns the shape of a single point.
func (s *MatrixSpace) Shape() array.Shape { return array.Shape{s.m, s.n} }

// RandomPoint draws matrices with entries uniform in [-1, 1).
func (s *MatrixSpace) RandomPoint(nSamples int, rng *rand.Rand) *array.Array {
	if nSamples == 1 {
		return array.Uniform(s.Shape(), -1, 1, rng)
	}
	return array.Uniform(array.Shape{nSamples, s.m, s.n}, -1, 1, rng)
}
