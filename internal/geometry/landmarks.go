package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/manifold-ml/manifold/internal/array"
)

// Landmarks is the space of configurations of a fixed number of labeled
// points on a base manifold with vector points. A configuration is the
// [nLandmarks, baseDim] matrix stacking the landmark coordinates.
type Landmarks struct {
	base       Space
	nLandmarks int
}

// NewLandmarks creates the space of nLandmarks labeled points on the base
// space.
func NewLandmarks(base Space, nLandmarks int) (*Landmarks, error) {
	if base.PointNDim() != 1 {
		return nil, fmt.Errorf("landmark configurations need a base space with vector points, got point shape %v", base.Shape())
	}
	if nLandmarks < 1 {
		return nil, fmt.Errorf("the number of landmarks must be positive, got %d", nLandmarks)
	}
	return &Landmarks{base: base, nLandmarks: nLandmarks}, nil
}

// Base returns the space each landmark lives on.
func (s *Landmarks) Base() Space { return s.base }

// NLandmarks returns the number of landmarks in a configuration.
func (s *Landmarks) NLandmarks() int { return s.nLandmarks }

// Dim returns the dimension of the configuration space.
func (s *Landmarks) Dim() int { return s.nLandmarks * s.base.Dim() }

// PointNDim returns the number of axes of one configuration.
func (s *Landmarks) PointNDim() int { return 2 }

// Shape returns the shape of one configuration.
func (s *Landmarks) Shape() array.Shape { return array.Shape{s.nLandmarks, s.base.Dim()} }

// RandomPoint samples configurations of independent base points.
func (s *Landmarks) RandomPoint(nSamples int, rng *rand.Rand) *array.Array {
	total := nSamples * s.nLandmarks
	pts := s.base.RandomPoint(total, rng)
	if total == 1 {
		pts = pts.Reshape(1, s.base.Dim())
	}
	if nSamples == 1 {
		return pts.Reshape(s.nLandmarks, s.base.Dim())
	}
	return pts.Reshape(nSamples, s.nLandmarks, s.base.Dim())
}

// L2Metric is the product metric on a landmark space: every operation acts
// on the landmarks independently through the base metric, and scalars sum
// over the configuration.
type L2Metric struct {
	space *Landmarks
	base  Metric
}

// NewL2Metric creates the product of the base metric over the landmarks of
// the space.
func NewL2Metric(space *Landmarks, baseMetric Metric) (*L2Metric, error) {
	if !baseMetric.Space().Shape().Equal(space.base.Shape()) {
		return nil, fmt.Errorf("base metric points have shape %v, the landmark space expects %v", baseMetric.Space().Shape(), space.base.Shape())
	}
	return &L2Metric{space: space, base: baseMetric}, nil
}

// Space returns the landmark space.
func (m *L2Metric) Space() Space { return m.space }

// BaseMetric returns the metric applied to each landmark.
func (m *L2Metric) BaseMetric() Metric { return m.base }

// MetricMatrix is not assembled for configurations.
func (m *L2Metric) MetricMatrix(basePoint *array.Array) (*array.Array, error) {
	return nil, fmt.Errorf("metric matrix: %w", ErrNotImplemented)
}

// CometricMatrix is not assembled for configurations.
func (m *L2Metric) CometricMatrix(basePoint *array.Array) (*array.Array, error) {
	return nil, fmt.Errorf("cometric matrix: %w", ErrNotImplemented)
}

// InnerProduct sums the base inner products over the landmarks.
func (m *L2Metric) InnerProduct(tangentVecA, tangentVecB, basePoint *array.Array) *array.Array {
	return m.base.InnerProduct(tangentVecA, tangentVecB, basePoint).Sum(-1, false)
}

// InnerCoproduct sums the base dual pairings over the landmarks.
func (m *L2Metric) InnerCoproduct(cotangentVecA, cotangentVecB, basePoint *array.Array) *array.Array {
	return m.base.InnerCoproduct(cotangentVecA, cotangentVecB, basePoint).Sum(-1, false)
}

// SquaredNorm computes the squared product norm of a tangent
// configuration.
func (m *L2Metric) SquaredNorm(vector, basePoint *array.Array) *array.Array {
	return m.InnerProduct(vector, vector, basePoint)
}

// Norm computes the product norm of a tangent configuration.
func (m *L2Metric) Norm(vector, basePoint *array.Array) *array.Array {
	return sqrtScalarField(m.SquaredNorm(vector, basePoint))
}

// Exp maps every landmark through the base exponential.
func (m *L2Metric) Exp(tangentVec, basePoint *array.Array) *array.Array {
	return m.base.Exp(tangentVec, basePoint)
}

// Log maps every landmark through the base logarithm.
func (m *L2Metric) Log(point, basePoint *array.Array) *array.Array {
	return m.base.Log(point, basePoint)
}

// SquaredDist sums the squared base distances over the landmarks.
func (m *L2Metric) SquaredDist(pointA, pointB *array.Array) *array.Array {
	return m.base.SquaredDist(pointA, pointB).Sum(-1, false)
}

// Dist computes the product distance between configurations.
func (m *L2Metric) Dist(pointA, pointB *array.Array) *array.Array {
	return sqrtScalarField(m.SquaredDist(pointA, pointB))
}

// Geodesic builds the configuration geodesic from an initial configuration
// and exactly one of an end configuration or an initial tangent vector.
func (m *L2Metric) Geodesic(initialPoint, endPoint, initialTangentVec *array.Array) (GeodesicFunc, error) {
	tangent, err := geodesicTangent(initialPoint, endPoint, initialTangentVec, m.Log)
	if err != nil {
		return nil, err
	}
	return expGeodesic(m.space.PointNDim(), initialPoint, tangent, m.Exp), nil
}

// ParallelTransport transports every landmark through the base metric.
func (m *L2Metric) ParallelTransport(tangentVec, basePoint, direction, endPoint *array.Array) *array.Array {
	return m.base.ParallelTransport(tangentVec, basePoint, direction, endPoint)
}

// InjectivityRadius is the smallest base injectivity radius over the
// landmarks of the configuration.
func (m *L2Metric) InjectivityRadius(basePoint *array.Array) (*array.Array, error) {
	radii, err := m.base.InjectivityRadius(basePoint)
	if err != nil {
		return nil, err
	}
	return minLastAxis(radii), nil
}

func minLastAxis(a *array.Array) *array.Array {
	shape := a.Shape()
	n := shape[len(shape)-1]
	out := array.Zeros(shape[:len(shape)-1].Clone())
	src := a.Data()
	dst := out.Data()
	for i := range dst {
		lo := src[i*n]
		for j := 1; j < n; j++ {
			lo = math.Min(lo, src[i*n+j])
		}
		dst[i] = lo
	}
	return out
}
