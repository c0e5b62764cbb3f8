// Package geometry implements Riemannian metrics on flat, immersed and
// quotient spaces: inner products, exponential and logarithmic maps,
// geodesics, parallel transport, and the group actions used to align
// points under symmetry.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/manifold-ml/manifold/internal/array"
)

var (
	// ErrNotImplemented reports a capability a metric cannot provide in
	// closed form, such as the metric matrix of a matrix-shaped flat space.
	ErrNotImplemented = errors.New("geometry: not implemented for this space")

	// ErrGeodesicSpec reports an invalid geodesic configuration: exactly
	// one of end point and initial tangent vector must be given.
	ErrGeodesicSpec = errors.New("geometry: geodesic needs exactly one of end point or initial tangent vector")
)

// GeodesicFunc evaluates a geodesic at the given times. The output carries
// the time axis right before the point axes: an unbatched initial condition
// yields [len(times), point...], a batched one [batch..., len(times),
// point...]. The callable is pure and restartable.
type GeodesicFunc func(times []float64) *array.Array

// Metric is the contract of a Riemannian metric. Implementations are
// read-only after construction and safe for concurrent use.
//
// Point and tangent arguments follow the batched array convention: a single
// point has the space's point shape, and arbitrary leading batch axes
// broadcast against each other. Methods returning an error do so only for
// configuration or capability failures; shape violations panic from the
// array layer.
type Metric interface {
	// Space returns the underlying point set.
	Space() Space

	// MetricMatrix returns the inner-product matrix at a base point, of
	// shape [..., dim, dim].
	MetricMatrix(basePoint *array.Array) (*array.Array, error)

	// CometricMatrix returns the inverse of the metric matrix at a base
	// point, of shape [..., dim, dim].
	CometricMatrix(basePoint *array.Array) (*array.Array, error)

	// InnerProduct computes the metric inner product of two tangent
	// vectors at a base point, of shape [...].
	InnerProduct(tangentVecA, tangentVecB, basePoint *array.Array) *array.Array

	// InnerCoproduct computes the cometric inner product of two cotangent
	// vectors at a base point, of shape [...].
	InnerCoproduct(cotangentVecA, cotangentVecB, basePoint *array.Array) *array.Array

	// SquaredNorm computes the squared metric norm of a tangent vector.
	SquaredNorm(vector, basePoint *array.Array) *array.Array

	// Norm computes the metric norm of a tangent vector.
	Norm(vector, basePoint *array.Array) *array.Array

	// Exp maps a tangent vector at a base point to the manifold along the
	// geodesic it spans.
	Exp(tangentVec, basePoint *array.Array) *array.Array

	// Log maps a point to the tangent vector at the base point whose Exp
	// reaches it.
	Log(point, basePoint *array.Array) *array.Array

	// SquaredDist computes the squared geodesic distance between points.
	SquaredDist(pointA, pointB *array.Array) *array.Array

	// Dist computes the geodesic distance between points.
	Dist(pointA, pointB *array.Array) *array.Array

	// Geodesic builds the geodesic from an initial point and exactly one
	// of an end point or an initial tangent vector (the other nil).
	Geodesic(initialPoint, endPoint, initialTangentVec *array.Array) (GeodesicFunc, error)

	// ParallelTransport transports a tangent vector at basePoint along
	// the geodesic spanned by direction, or towards endPoint when
	// direction is nil.
	ParallelTransport(tangentVec, basePoint, direction, endPoint *array.Array) *array.Array

	// InjectivityRadius returns the radius, of shape [...], within which
	// Exp is a diffeomorphism around the base point.
	InjectivityRadius(basePoint *array.Array) (*array.Array, error)
}

// innerViaMetricMatrix is the general bilinear-form inner product
// g_p(a, b) through a metric matrix.
func innerViaMetricMatrix(metricMatrix, tangentVecA, tangentVecB *array.Array) *array.Array {
	return array.Einsum("...j,...jk,...k->...", tangentVecA, metricMatrix, tangentVecB)
}

// sqrtScalarField takes the elementwise square root of a [...]-shaped
// scalar field, clamping the tiny negatives that cancellation can leave.
func sqrtScalarField(a *array.Array) *array.Array {
	out := a.Clone()
	data := out.Data()
	for i, v := range data {
		if v < 0 {
			v = 0
		}
		data[i] = math.Sqrt(v)
	}
	return out
}

// distFromLog derives distances as the norm of the log, the default for
// every metric without a closed form.
func distFromLog(m Metric, pointA, pointB *array.Array) *array.Array {
	return m.Norm(m.Log(pointB, pointA), pointA)
}

// geodesicTangent resolves the geodesic specification shared by all
// metrics: exactly one of endPoint and initialTangentVec, with logFn
// closing the end-point form.
func geodesicTangent(initialPoint, endPoint, initialTangentVec *array.Array, logFn func(point, basePoint *array.Array) *array.Array) (*array.Array, error) {
	if endPoint == nil && initialTangentVec == nil {
		return nil, fmt.Errorf("%w: neither was given", ErrGeodesicSpec)
	}
	if endPoint != nil && initialTangentVec != nil {
		return nil, fmt.Errorf("%w: both were given", ErrGeodesicSpec)
	}
	if endPoint != nil {
		return logFn(endPoint, initialPoint), nil
	}
	return initialTangentVec, nil
}

// linearGeodesic builds the straight-line geodesic of a flat metric:
// path(t) = initialPoint + t * initialTangentVec, with the time axis
// inserted before the point axes.
func linearGeodesic(pointNDim int, initialPoint, initialTangentVec *array.Array) GeodesicFunc {
	if isBatch(pointNDim, initialPoint, initialTangentVec) {
		initialPoint = initialPoint.ExpandDims(-(pointNDim + 1))
	}
	spec := fmt.Sprintf("n,...%s->...n%s", "ijk"[:pointNDim], "ijk"[:pointNDim])

	return func(times []float64) *array.Array {
		t := array.FromValues(times...)
		tangentVecs := array.Einsum(spec, t, initialTangentVec)
		return initialPoint.Add(tangentVecs)
	}
}

// expGeodesic builds a geodesic by evaluating expFn on the scaled initial
// tangent, one time value at a time. This is the fallback for metrics whose
// exponential has no closed form.
func expGeodesic(pointNDim int, initialPoint, initialTangentVec *array.Array, expFn func(tangentVec, basePoint *array.Array) *array.Array) GeodesicFunc {
	return func(times []float64) *array.Array {
		snapshots := make([]*array.Array, len(times))
		for i, t := range times {
			snapshots[i] = expFn(initialTangentVec.MulScalar(t), initialPoint)
		}
		return stackTimeAxis(pointNDim, snapshots)
	}
}
