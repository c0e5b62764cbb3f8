package geometry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/manifold-ml/manifold/internal/array"
)

// ImmersionFunc maps one point of the coordinate chart, shape [dim], to its
// image in the embedding space, shape [embeddingDim].
type ImmersionFunc func(point *array.Array) *array.Array

// JacobianFunc maps one point, shape [dim], to the [embeddingDim, dim]
// Jacobian matrix of the immersion at that point.
type JacobianFunc func(point *array.Array) *array.Array

// PullbackConfig tunes the numerical machinery of a PullbackMetric. The
// zero value selects central finite differences for the Jacobian, 100
// integration steps for Exp and a shooting Log capped at 32 rounds with
// tolerance 1e-10.
type PullbackConfig struct {
	// Jacobian replaces finite-difference differentiation of the immersion
	// with a closed form.
	Jacobian JacobianFunc

	// GeodesicSteps is the number of Runge-Kutta steps used by Exp.
	GeodesicSteps int

	// LogMaxIter caps the shooting rounds used by Log.
	LogMaxIter int

	// LogTol is the coordinate residual below which shooting stops.
	LogTol float64
}

// PullbackMetric turns an immersion f of a dim-dimensional coordinate chart
// into a flat embedding space into a Riemannian metric on the chart, by
// pulling the embedding inner product back through the differential of f:
// the metric matrix at a point is J(x)^T J(x).
//
// Exp integrates the geodesic equation numerically and Log inverts it by
// shooting, so both carry the accuracy of their solvers rather than closed
// forms. Parallel transport uses ladder approximations, see
// LadderParallelTransport.
type PullbackMetric struct {
	space        *Euclidean
	embeddingDim int
	immersion    ImmersionFunc
	jacobian     JacobianFunc
	expSolver    expODESolver
	logSolver    logShootingSolver
}

// NewPullbackMetric creates the metric induced on a dim-dimensional chart
// by immersing it into a flat space of dimension embeddingDim.
func NewPullbackMetric(dim, embeddingDim int, immersion ImmersionFunc, cfg PullbackConfig) (*PullbackMetric, error) {
	if dim < 1 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	if embeddingDim < dim {
		return nil, fmt.Errorf("embedding dimension %d is smaller than the chart dimension %d", embeddingDim, dim)
	}
	if immersion == nil {
		return nil, errors.New("an immersion is required")
	}
	m := &PullbackMetric{
		space:        NewEuclidean(dim),
		embeddingDim: embeddingDim,
		immersion:    immersion,
		jacobian:     cfg.Jacobian,
		expSolver:    newExpODESolver(cfg.GeodesicSteps),
		logSolver:    newLogShootingSolver(cfg.LogMaxIter, cfg.LogTol),
	}
	return m, nil
}

// Space returns the coordinate chart the metric lives on.
func (m *PullbackMetric) Space() Space { return m.space }

// EmbeddingDim returns the dimension of the flat space the chart is
// immersed into.
func (m *PullbackMetric) EmbeddingDim() int { return m.embeddingDim }

// Immersion maps points of the chart into the embedding space.
func (m *PullbackMetric) Immersion(point *array.Array) *array.Array {
	return mapBatch(1, array.Shape{m.embeddingDim}, func(pts ...*array.Array) *array.Array {
		return m.immersion(pts[0])
	}, point)
}

// JacobianImmersion evaluates the [embeddingDim, dim] Jacobian matrix of
// the immersion, by closed form when one was configured and by central
// finite differences otherwise.
func (m *PullbackMetric) JacobianImmersion(basePoint *array.Array) *array.Array {
	d := m.space.Dim()
	return mapBatch(1, array.Shape{m.embeddingDim, d}, func(pts ...*array.Array) *array.Array {
		return m.jacobianSingle(pts[0])
	}, basePoint)
}

// TangentImmersion pushes a tangent vector of the chart forward to the
// embedding space through the differential of the immersion.
func (m *PullbackMetric) TangentImmersion(tangentVec, basePoint *array.Array) *array.Array {
	return mapBatch(1, array.Shape{m.embeddingDim}, func(pts ...*array.Array) *array.Array {
		return array.Matvec(m.jacobianSingle(pts[1]), pts[0])
	}, tangentVec, basePoint)
}

func (m *PullbackMetric) jacobianSingle(point *array.Array) *array.Array {
	if m.jacobian != nil {
		return m.jacobian(point)
	}
	d := m.space.Dim()
	f := func(y, x []float64) {
		p := array.MustFromSlice(x, array.Shape{d})
		copy(y, m.immersion(p).Data())
	}
	dst := mat.NewDense(m.embeddingDim, d, nil)
	fd.Jacobian(dst, f, point.Clone().Data(), &fd.JacobianSettings{Formula: fd.Central})
	return array.FromDense(dst)
}

func (m *PullbackMetric) metricMatrixSingle(point *array.Array) *array.Array {
	jac := m.jacobianSingle(point)
	return array.MatMul(jac.T(), jac)
}

// MetricMatrix evaluates the pulled back inner-product matrix J^T J at the
// base point.
func (m *PullbackMetric) MetricMatrix(basePoint *array.Array) (*array.Array, error) {
	d := m.space.Dim()
	out := mapBatch(1, array.Shape{d, d}, func(pts ...*array.Array) *array.Array {
		return m.metricMatrixSingle(pts[0])
	}, basePoint)
	return out, nil
}

// CometricMatrix evaluates the inverse metric matrix at the base point.
func (m *PullbackMetric) CometricMatrix(basePoint *array.Array) (*array.Array, error) {
	metric, err := m.MetricMatrix(basePoint)
	if err != nil {
		return nil, err
	}
	return array.Inv(metric), nil
}

// InnerProductDerivativeMatrix evaluates the coordinate derivatives of the
// metric matrix by central finite differences, with the index of derivation
// last: out[i, j, k] is the derivative of the (i, j) metric entry along the
// k-th coordinate.
func (m *PullbackMetric) InnerProductDerivativeMatrix(basePoint *array.Array) (*array.Array, error) {
	d := m.space.Dim()
	out := mapBatch(1, array.Shape{d, d, d}, func(pts ...*array.Array) *array.Array {
		return m.derivativeSingle(pts[0])
	}, basePoint)
	return out, nil
}

func (m *PullbackMetric) derivativeSingle(point *array.Array) *array.Array {
	d := m.space.Dim()
	f := func(y, x []float64) {
		p := array.MustFromSlice(x, array.Shape{d})
		copy(y, m.metricMatrixSingle(p).Data())
	}
	dst := mat.NewDense(d*d, d, nil)
	fd.Jacobian(dst, f, point.Clone().Data(), &fd.JacobianSettings{Formula: fd.Central})
	return array.FromDense(dst).Reshape(d, d, d)
}

// Christoffels evaluates the Christoffel symbols of the metric with the
// contravariant index first.
func (m *PullbackMetric) Christoffels(basePoint *array.Array) (*array.Array, error) {
	d := m.space.Dim()
	out := mapBatch(1, array.Shape{d, d, d}, func(pts ...*array.Array) *array.Array {
		return m.christoffelsSingle(pts[0])
	}, basePoint)
	return out, nil
}

func (m *PullbackMetric) christoffelsSingle(point *array.Array) *array.Array {
	cometric := array.Inv(m.metricMatrixSingle(point))
	deriv := m.derivativeSingle(point)
	term1 := array.Einsum("lk,jli->kij", cometric, deriv)
	term2 := array.Einsum("lk,lij->kij", cometric, deriv)
	term3 := array.Einsum("lk,ijl->kij", cometric, deriv)
	return term1.Add(term2).Sub(term3).MulScalar(0.5)
}

// InnerProduct evaluates the pulled back inner product of two tangent
// vectors at the base point.
func (m *PullbackMetric) InnerProduct(tangentVecA, tangentVecB, basePoint *array.Array) *array.Array {
	metric, err := m.MetricMatrix(basePoint)
	if err != nil {
		panic(fmt.Sprintf("inner product: %v", err))
	}
	return innerViaMetricMatrix(metric, tangentVecA, tangentVecB)
}

// InnerCoproduct evaluates the dual pairing of two cotangent vectors at the
// base point.
func (m *PullbackMetric) InnerCoproduct(cotangentVecA, cotangentVecB, basePoint *array.Array) *array.Array {
	cometric, err := m.CometricMatrix(basePoint)
	if err != nil {
		panic(fmt.Sprintf("inner coproduct: %v", err))
	}
	return innerViaMetricMatrix(cometric, cotangentVecA, cotangentVecB)
}

// SquaredNorm computes the squared metric norm of a tangent vector.
func (m *PullbackMetric) SquaredNorm(vector, basePoint *array.Array) *array.Array {
	return m.InnerProduct(vector, vector, basePoint)
}

// Norm computes the metric norm of a tangent vector.
func (m *PullbackMetric) Norm(vector, basePoint *array.Array) *array.Array {
	return sqrtScalarField(m.SquaredNorm(vector, basePoint))
}

func (m *PullbackMetric) expSingle(tangentVec, basePoint *array.Array) *array.Array {
	return m.expSolver.Solve(m.christoffelsSingle, tangentVec, basePoint)
}

// Exp integrates the geodesic equation from the base point with the given
// initial velocity and returns the point reached at time 1.
func (m *PullbackMetric) Exp(tangentVec, basePoint *array.Array) *array.Array {
	d := m.space.Dim()
	return mapBatch(1, array.Shape{d}, func(pts ...*array.Array) *array.Array {
		return m.expSingle(pts[0], pts[1])
	}, tangentVec, basePoint)
}

// Log shoots for the initial velocity whose geodesic reaches point from
// basePoint at time 1.
func (m *PullbackMetric) Log(point, basePoint *array.Array) *array.Array {
	d := m.space.Dim()
	return mapBatch(1, array.Shape{d}, func(pts ...*array.Array) *array.Array {
		return m.logSolver.Solve(m.expSingle, pts[0], pts[1])
	}, point, basePoint)
}

// SquaredDist computes the squared geodesic distance between two points.
func (m *PullbackMetric) SquaredDist(pointA, pointB *array.Array) *array.Array {
	return m.SquaredNorm(m.Log(pointB, pointA), pointA)
}

// Dist computes the geodesic distance between two points.
func (m *PullbackMetric) Dist(pointA, pointB *array.Array) *array.Array {
	return distFromLog(m, pointA, pointB)
}

// Geodesic builds a time parametrized geodesic from an initial point and
// exactly one of an end point or an initial tangent vector. Each time value
// triggers one integration of the geodesic equation.
func (m *PullbackMetric) Geodesic(initialPoint, endPoint, initialTangentVec *array.Array) (GeodesicFunc, error) {
	tangent, err := geodesicTangent(initialPoint, endPoint, initialTangentVec, m.Log)
	if err != nil {
		return nil, err
	}
	return expGeodesic(m.space.PointNDim(), initialPoint, tangent, m.Exp), nil
}

// ParallelTransport approximates parallel transport with a single rung of
// the pole ladder. The direction may be given either as a tangent vector or
// through an end point; see LadderParallelTransport for finer control.
func (m *PullbackMetric) ParallelTransport(tangentVec, basePoint, direction, endPoint *array.Array) *array.Array {
	if direction == nil {
		if endPoint == nil {
			panic("parallel transport: a direction or an end point is required")
		}
		direction = m.Log(endPoint, basePoint)
	}
	res, err := LadderParallelTransport(m, tangentVec, basePoint, direction, LadderConfig{})
	if err != nil {
		panic(fmt.Sprintf("parallel transport: %v", err))
	}
	return res.TransportedTangentVec
}

// InjectivityRadius is not known for a generic immersion.
func (m *PullbackMetric) InjectivityRadius(basePoint *array.Array) (*array.Array, error) {
	return nil, fmt.Errorf("injectivity radius: %w", ErrNotImplemented)
}
