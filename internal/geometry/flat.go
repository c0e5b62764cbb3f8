package geometry

import (
	"fmt"
	"math"

	"github.com/manifold-ml/manifold/internal/array"
)

// FlatMetric is a metric whose inner product does not depend on the base
// point. Geodesics are straight lines, the exponential map is vector
// addition, and parallel transport leaves tangent vectors unchanged.
//
// On vector point spaces the metric is represented by a constant positive
// definite matrix, the identity by default. On matrix point spaces the
// inner product is the Frobenius pairing and no matrix representation is
// available: the matrix-valued queries return ErrNotImplemented.
type FlatMetric struct {
	space        Space
	metricMatrix *array.Array // nil on matrix point spaces
}

// NewFlatMetric creates a flat metric on the space. metricMatrix must be
// nil or of shape [dim, dim]; it defaults to the identity on vector point
// spaces and must stay nil on matrix point spaces.
func NewFlatMetric(space Space, metricMatrix *array.Array) (*FlatMetric, error) {
	if metricMatrix != nil {
		if space.PointNDim() > 1 {
			return nil, fmt.Errorf("a constant metric matrix needs a vector point space, got point shape %v", space.Shape())
		}
		expected := array.Shape{space.Dim(), space.Dim()}
		if !metricMatrix.Shape().Equal(expected) {
			return nil, fmt.Errorf("metric matrix shape is %v; expected %v", metricMatrix.Shape(), expected)
		}
		metricMatrix = metricMatrix.Clone()
	} else if space.PointNDim() == 1 {
		metricMatrix = array.Eye(space.Dim())
	}
	return &FlatMetric{space: space, metricMatrix: metricMatrix}, nil
}

// NewEuclideanMetric creates the canonical metric on the Euclidean space of
// the given dimension.
func NewEuclideanMetric(dim int) *FlatMetric {
	m, err := NewFlatMetric(NewEuclidean(dim), nil)
	if err != nil {
		panic(err)
	}
	return m
}

// Space returns the underlying point set.
func (m *FlatMetric) Space() Space { return m.space }

// MetricMatrix returns the constant inner-product matrix broadcast to the
// base point's batch shape.
func (m *FlatMetric) MetricMatrix(basePoint *array.Array) (*array.Array, error) {
	if m.metricMatrix == nil {
		return nil, fmt.Errorf("metric matrix: %w", ErrNotImplemented)
	}
	dim := m.space.Dim()
	out := repeatOut(m.space.PointNDim(), m.metricMatrix.Clone(), array.Shape{dim, dim}, basePoint)
	return out, nil
}

// CometricMatrix returns the constant inverse metric matrix broadcast to
// the base point's batch shape.
func (m *FlatMetric) CometricMatrix(basePoint *array.Array) (*array.Array, error) {
	if m.metricMatrix == nil {
		return nil, fmt.Errorf("cometric matrix: %w", ErrNotImplemented)
	}
	dim := m.space.Dim()
	out := repeatOut(m.space.PointNDim(), array.Inv(m.metricMatrix), array.Shape{dim, dim}, basePoint)
	return out, nil
}

// InnerProductDerivativeMatrix returns the derivative of the metric matrix,
// identically zero for a flat metric, with the index of derivation last.
func (m *FlatMetric) InnerProductDerivativeMatrix(basePoint *array.Array) (*array.Array, error) {
	if m.space.PointNDim() > 1 {
		return nil, fmt.Errorf("inner product derivative matrix: %w", ErrNotImplemented)
	}
	dim := m.space.Dim()
	shape := array.Shape{dim, dim, dim}
	return repeatOut(m.space.PointNDim(), array.Zeros(shape), shape, basePoint), nil
}

// Christoffels returns the Christoffel symbols, identically zero for a flat
// metric, with the contravariant index first.
func (m *FlatMetric) Christoffels(basePoint *array.Array) (*array.Array, error) {
	if m.space.PointNDim() > 1 {
		return nil, fmt.Errorf("christoffels: %w", ErrNotImplemented)
	}
	dim := m.space.Dim()
	shape := array.Shape{dim, dim, dim}
	return repeatOut(m.space.PointNDim(), array.Zeros(shape), shape, basePoint), nil
}

// InnerProduct computes the constant bilinear form on two tangent vectors.
// The base point only contributes batch axes.
func (m *FlatMetric) InnerProduct(tangentVecA, tangentVecB, basePoint *array.Array) *array.Array {
	if m.metricMatrix == nil {
		out := sumOverPointAxes(tangentVecA.Mul(tangentVecB), m.space.PointNDim())
		return repeatOut(m.space.PointNDim(), out, array.Shape{}, tangentVecA, tangentVecB, basePoint)
	}
	out := innerViaMetricMatrix(m.metricMatrix, tangentVecA, tangentVecB)
	return repeatOut(m.space.PointNDim(), out, array.Shape{}, tangentVecA, tangentVecB, basePoint)
}

// InnerCoproduct computes the inner product dual to the metric on two
// cotangent vectors.
func (m *FlatMetric) InnerCoproduct(cotangentVecA, cotangentVecB, basePoint *array.Array) *array.Array {
	if m.metricMatrix == nil {
		out := sumOverPointAxes(cotangentVecA.Mul(cotangentVecB), m.space.PointNDim())
		return repeatOut(m.space.PointNDim(), out, array.Shape{}, cotangentVecA, cotangentVecB, basePoint)
	}
	out := innerViaMetricMatrix(array.Inv(m.metricMatrix), cotangentVecA, cotangentVecB)
	return repeatOut(m.space.PointNDim(), out, array.Shape{}, cotangentVecA, cotangentVecB, basePoint)
}

// SquaredNorm computes the squared metric norm of a tangent vector.
func (m *FlatMetric) SquaredNorm(vector, basePoint *array.Array) *array.Array {
	return m.InnerProduct(vector, vector, basePoint)
}

// Norm computes the metric norm of a tangent vector.
func (m *FlatMetric) Norm(vector, basePoint *array.Array) *array.Array {
	return sqrtScalarField(m.SquaredNorm(vector, basePoint))
}

// Exp is vector addition: the geodesic through basePoint with velocity
// tangentVec reaches basePoint + tangentVec at time 1.
func (m *FlatMetric) Exp(tangentVec, basePoint *array.Array) *array.Array {
	return basePoint.Add(tangentVec)
}

// Log is vector subtraction, the exact inverse of Exp.
func (m *FlatMetric) Log(point, basePoint *array.Array) *array.Array {
	return point.Sub(basePoint)
}

// SquaredDist computes the squared straight-line distance in the metric.
func (m *FlatMetric) SquaredDist(pointA, pointB *array.Array) *array.Array {
	return m.SquaredNorm(m.Log(pointB, pointA), pointA)
}

// Dist computes the straight-line distance in the metric.
func (m *FlatMetric) Dist(pointA, pointB *array.Array) *array.Array {
	return sqrtScalarField(m.SquaredDist(pointA, pointB))
}

// Geodesic builds the straight-line geodesic from an initial point and
// exactly one of an end point or an initial tangent vector.
func (m *FlatMetric) Geodesic(initialPoint, endPoint, initialTangentVec *array.Array) (GeodesicFunc, error) {
	tangent, err := geodesicTangent(initialPoint, endPoint, initialTangentVec, m.Log)
	if err != nil {
		return nil, err
	}
	return linearGeodesic(m.space.PointNDim(), initialPoint, tangent), nil
}

// ParallelTransport returns a copy of the tangent vector: transport is the
// identity on a flat space. The copy broadcasts to the combined batch shape
// of all given arguments.
func (m *FlatMetric) ParallelTransport(tangentVec, basePoint, direction, endPoint *array.Array) *array.Array {
	transported := tangentVec.Clone()
	return repeatOut(m.space.PointNDim(), transported, m.space.Shape(), tangentVec, basePoint, direction, endPoint)
}

// InjectivityRadius is infinite: Exp is a global diffeomorphism.
func (m *FlatMetric) InjectivityRadius(basePoint *array.Array) (*array.Array, error) {
	radius := array.Scalar(math.Inf(1))
	return repeatOut(m.space.PointNDim(), radius, array.Shape{}, basePoint), nil
}
