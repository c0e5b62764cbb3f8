package geometry

import (
	"github.com/manifold-ml/manifold/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

// GroupAction maps group elements over points of a space.
type GroupAction = geometry.GroupAction

// CongruenceAction acts on matrices by g p g^T.
type CongruenceAction = geometry.CongruenceAction

// PermutationAction relabels matrix rows and columns by a permutation
// given in one-line notation.
type PermutationAction = geometry.PermutationAction

// RowPermutationAction permutes matrix rows with permutation matrices.
type RowPermutationAction = geometry.RowPermutationAction

// InversePermutation inverts permutations in one-line notation,
// broadcasting over a batch axis.
func InversePermutation(perm *array.Array) *array.Array {
	return geometry.InversePermutation(perm)
}

// PermutationMatrixFromVector expands one-line notation into permutation
// matrices.
func PermutationMatrixFromVector(perm *array.Array) (*array.Array, error) {
	return geometry.PermutationMatrixFromVector(perm)
}

// GraphSpace is the space of nNodes×nNodes adjacency matrices quotiented
// by node relabelings.
type GraphSpace = geometry.GraphSpace

// NewGraphSpace builds the space of graphs on the given number of nodes.
func NewGraphSpace(nNodes int) *GraphSpace {
	return geometry.NewGraphSpace(nNodes)
}

// GraphAligner searches a graph's orbit for the representative closest
// to a base point.
type GraphAligner = geometry.GraphAligner

// ExhaustiveAligner sweeps every node permutation. The search is
// factorial in the node count and bounded at construction.
type ExhaustiveAligner = geometry.ExhaustiveAligner

// IdentityAligner keeps the given labeling, for data already matched.
type IdentityAligner = geometry.IdentityAligner

// PointToGeodesicAligner aligns points against a sampled grid of
// geodesic points.
type PointToGeodesicAligner = geometry.PointToGeodesicAligner

// GraphSpaceConfig tunes the quotient metric. Zero values align
// exhaustively and sample geodesics on ten points over [-1, 1].
type GraphSpaceConfig = geometry.GraphSpaceConfig

// GraphSpaceMetric is the quotient metric on graph space: operations
// align their arguments into matching labelings, then fall through to
// the Frobenius metric of the total space.
//
// Example:
//
//	space := geometry.NewGraphSpace(3)
//	metric, _ := geometry.NewGraphSpaceMetric(space, geometry.GraphSpaceConfig{})
//	d := metric.Dist(g1, g2) // distance between orbits
type GraphSpaceMetric = geometry.GraphSpaceMetric

// NewGraphSpaceMetric builds the quotient metric for the space.
func NewGraphSpaceMetric(space *GraphSpace, cfg GraphSpaceConfig) (*GraphSpaceMetric, error) {
	return geometry.NewGraphSpaceMetric(space, cfg)
}
