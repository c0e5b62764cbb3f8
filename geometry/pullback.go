package geometry

import (
	"github.com/manifold-ml/manifold/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

// ImmersionFunc maps one intrinsic point into the embedding space.
type ImmersionFunc = geometry.ImmersionFunc

// JacobianFunc returns the embedding-by-intrinsic Jacobian at one point.
type JacobianFunc = geometry.JacobianFunc

// PullbackConfig tunes a pullback metric. Zero values select central
// finite differences for the Jacobian and the default solver settings.
type PullbackConfig = geometry.PullbackConfig

// PullbackMetric pulls the embedding metric back through an immersion.
//
// The metric matrix is J^T J at each point; exponentials integrate the
// geodesic equation and logarithms shoot for the target point, so both
// carry the cost and the accuracy of numeric solvers.
//
// Example:
//
//	sphere := func(p *array.Array) *array.Array {
//	    theta, phi := p.At(0), p.At(1)
//	    return array.FromValues(
//	        math.Cos(phi)*math.Sin(theta),
//	        math.Sin(phi)*math.Sin(theta),
//	        math.Cos(theta))
//	}
//	metric, err := geometry.NewPullbackMetric(2, 3, sphere, geometry.PullbackConfig{})
type PullbackMetric = geometry.PullbackMetric

// NewPullbackMetric builds the metric induced on a dim-dimensional space
// immersed into embeddingDim dimensions.
func NewPullbackMetric(dim, embeddingDim int, immersion ImmersionFunc, cfg PullbackConfig) (*PullbackMetric, error) {
	return geometry.NewPullbackMetric(dim, embeddingDim, immersion, cfg)
}

// Ladder scheme names.
const (
	SchemePole   = geometry.SchemePole
	SchemeSchild = geometry.SchemeSchild
)

// LadderConfig tunes the ladder construction. Zero values select one
// pole rung.
type LadderConfig = geometry.LadderConfig

// LadderResult carries the transported tangent vector and the end point
// of the transport geodesic.
type LadderResult = geometry.LadderResult

// LadderParallelTransport approximates parallel transport along the
// geodesic from the base point in the given direction, building rungs
// from the metric's Exp and Log.
func LadderParallelTransport(m Metric, tangentVec, basePoint, direction *array.Array, cfg LadderConfig) (LadderResult, error) {
	return geometry.LadderParallelTransport(m, tangentVec, basePoint, direction, cfg)
}
