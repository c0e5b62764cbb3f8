package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/manifold-ml/manifold/internal/array"
)

// GraphSpace is the space of weighted graphs on a fixed set of nodes,
// represented by their adjacency matrices. Two matrices describe the same
// graph when one is a node relabeling of the other, so the space is the
// quotient of the [nNodes, nNodes] matrix space by the permutation action.
type GraphSpace struct {
	nNodes int
	total  *MatrixSpace
}

// NewGraphSpace creates the space of graphs on nNodes nodes.
func NewGraphSpace(nNodes int) *GraphSpace {
	if nNodes < 1 {
		panic(fmt.Sprintf("graph space: node count must be positive, got %d", nNodes))
	}
	return &GraphSpace{nNodes: nNodes, total: NewMatrixSpace(nNodes, nNodes)}
}

// NNodes returns the number of nodes.
func (s *GraphSpace) NNodes() int { return s.nNodes }

// Dim returns the dimension of the total matrix space.
func (s *GraphSpace) Dim() int { return s.total.Dim() }

// PointNDim returns the number of axes of one adjacency matrix.
func (s *GraphSpace) PointNDim() int { return 2 }

// Shape returns the shape of one adjacency matrix.
func (s *GraphSpace) Shape() array.Shape { return s.total.Shape() }

// RandomPoint samples adjacency matrices with independent uniform weights.
func (s *GraphSpace) RandomPoint(nSamples int, rng *rand.Rand) *array.Array {
	return s.total.RandomPoint(nSamples, rng)
}

// GraphAligner selects, among all relabelings of a graph, the
// representative closest to a base graph in the total space metric. Both
// arguments are single adjacency matrices.
type GraphAligner interface {
	Align(totalMetric Metric, action GroupAction, basePoint, point *array.Array) *array.Array
}

// ExhaustiveAligner scores every node relabeling and keeps the closest.
// The search is exact and factorial in the node count.
type ExhaustiveAligner struct {
	// Bound caps the node count the search accepts. Default 8.
	Bound int
}

// MaxNodes returns the largest node count the aligner accepts.
func (a ExhaustiveAligner) MaxNodes() int {
	if a.Bound == 0 {
		return 8
	}
	return a.Bound
}

// Align tries every permutation of the point's nodes.
func (a ExhaustiveAligner) Align(totalMetric Metric, action GroupAction, basePoint, point *array.Array) *array.Array {
	n := point.Shape()[point.NDim()-1]
	best := point.Clone()
	bestDist := math.Inf(1)
	elem := make([]float64, n)
	forEachPermutation(n, func(p []int) {
		for i, v := range p {
			elem[i] = float64(v)
		}
		candidate := action.Act(array.MustFromSlice(elem, array.Shape{n}), point)
		d := totalMetric.SquaredDist(basePoint, candidate).Item()
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	})
	return best
}

// forEachPermutation runs f on every permutation of 0..n-1 using Heap's
// algorithm. The slice passed to f is reused between calls.
func forEachPermutation(n int, f func([]int)) {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	var rec func(k int)
	rec = func(k int) {
		if k <= 1 {
			f(p)
			return
		}
		for i := 0; i < k-1; i++ {
			rec(k - 1)
			if k%2 == 0 {
				p[i], p[k-1] = p[k-1], p[i]
			} else {
				p[0], p[k-1] = p[k-1], p[0]
			}
		}
		rec(k - 1)
	}
	rec(n)
}

// IdentityAligner keeps the input labeling, for data known to share node
// correspondences already.
type IdentityAligner struct{}

// Align returns a copy of the point.
func (IdentityAligner) Align(totalMetric Metric, action GroupAction, basePoint, point *array.Array) *array.Array {
	return point.Clone()
}

// PointToGeodesicAligner aligns a graph against a geodesic by sampling the
// geodesic on a parameter grid, aligning the graph to every sample and
// keeping the closest alignment.
type PointToGeodesicAligner struct {
	// SMin and SMax bound the sampled parameter interval. When both are
	// zero the interval defaults to [-1, 1].
	SMin, SMax float64

	// NPoints is the number of grid samples. Default 10.
	NPoints int
}

func (a PointToGeodesicAligner) withDefaults() (PointToGeodesicAligner, error) {
	if a.SMin == 0 && a.SMax == 0 {
		a.SMin, a.SMax = -1, 1
	}
	if a.NPoints == 0 {
		a.NPoints = 10
	}
	if a.NPoints < 1 {
		return a, fmt.Errorf("geodesic alignment needs at least one sample, got %d", a.NPoints)
	}
	if a.SMin >= a.SMax {
		return a, fmt.Errorf("geodesic alignment needs an interval with SMin < SMax, got [%g, %g]", a.SMin, a.SMax)
	}
	return a, nil
}

// GraphSpaceConfig tunes the quotient structure of a graph space metric.
// The zero value quotients the Frobenius metric by full node relabelings,
// matched exhaustively.
type GraphSpaceConfig struct {
	// Aligner matches node labelings between pairs of graphs. Default
	// ExhaustiveAligner{}.
	Aligner GraphAligner

	// GeodesicAligner matches a graph against a sampled geodesic. Its
	// zero value samples [-1, 1] at 10 points.
	GeodesicAligner PointToGeodesicAligner
}

// GraphSpaceMetric is the quotient metric on a graph space: distances are
// measured in the flat total space of adjacency matrices after aligning
// node labelings. Exp and tangent vectors live in the total space.
type GraphSpaceMetric struct {
	space       *GraphSpace
	totalMetric Metric
	action      GroupAction
	aligner     GraphAligner
	geoAligner  PointToGeodesicAligner
}

// NewGraphSpaceMetric creates the quotient metric on the space.
func NewGraphSpaceMetric(space *GraphSpace, cfg GraphSpaceConfig) (*GraphSpaceMetric, error) {
	aligner := cfg.Aligner
	if aligner == nil {
		aligner = ExhaustiveAligner{}
	}
	if bounded, ok := aligner.(interface{ MaxNodes() int }); ok {
		if bound := bounded.MaxNodes(); bound > 0 && space.NNodes() > bound {
			return nil, fmt.Errorf("aligning graphs on %d nodes exceeds the aligner's bound of %d nodes", space.NNodes(), bound)
		}
	}
	geoAligner, err := cfg.GeodesicAligner.withDefaults()
	if err != nil {
		return nil, err
	}
	total, err := NewFlatMetric(space.total, nil)
	if err != nil {
		return nil, err
	}
	return &GraphSpaceMetric{
		space:       space,
		totalMetric: total,
		action:      PermutationAction{},
		aligner:     aligner,
		geoAligner:  geoAligner,
	}, nil
}

// Space returns the graph space.
func (q *GraphSpaceMetric) Space() Space { return q.space }

// TotalSpaceMetric returns the flat metric on adjacency matrices that the
// quotient is built from.
func (q *GraphSpaceMetric) TotalSpaceMetric() Metric { return q.totalMetric }

// AlignPointToPoint returns the representative of each point's orbit
// closest to the base point. Base points and points broadcast pairwise
// over batch axes.
func (q *GraphSpaceMetric) AlignPointToPoint(basePoint, point *array.Array) *array.Array {
	return mapBatch(2, q.space.Shape(), func(pts ...*array.Array) *array.Array {
		return q.aligner.Align(q.totalMetric, q.action, pts[0], pts[1])
	}, basePoint, point)
}

// AlignPointToGeodesic aligns each point against the geodesic: the
// geodesic is sampled on the configured grid and every point is matched to
// its closest sample.
func (q *GraphSpaceMetric) AlignPointToGeodesic(geodesic GeodesicFunc, point *array.Array) *array.Array {
	times := array.Linspace(q.geoAligner.SMin, q.geoAligner.SMax, q.geoAligner.NPoints)
	gammaS := geodesic(times.Data())
	samples := make([]*array.Array, q.geoAligner.NPoints)
	for i := range samples {
		samples[i] = gammaS.Index(i)
	}
	return mapBatch(2, q.space.Shape(), func(pts ...*array.Array) *array.Array {
		best := pts[0].Clone()
		bestDist := math.Inf(1)
		for _, sample := range samples {
			aligned := q.aligner.Align(q.totalMetric, q.action, sample, pts[0])
			d := q.totalMetric.SquaredDist(sample, aligned).Item()
			if d < bestDist {
				bestDist = d
				best = aligned
			}
		}
		return best
	}, point)
}

// MetricMatrix is not available on a matrix point space.
func (q *GraphSpaceMetric) MetricMatrix(basePoint *array.Array) (*array.Array, error) {
	return q.totalMetric.MetricMatrix(basePoint)
}

// CometricMatrix is not available on a matrix point space.
func (q *GraphSpaceMetric) CometricMatrix(basePoint *array.Array) (*array.Array, error) {
	return q.totalMetric.CometricMatrix(basePoint)
}

// InnerProduct computes the total space inner product.
func (q *GraphSpaceMetric) InnerProduct(tangentVecA, tangentVecB, basePoint *array.Array) *array.Array {
	return q.totalMetric.InnerProduct(tangentVecA, tangentVecB, basePoint)
}

// InnerCoproduct computes the total space dual pairing.
func (q *GraphSpaceMetric) InnerCoproduct(cotangentVecA, cotangentVecB, basePoint *array.Array) *array.Array {
	return q.totalMetric.InnerCoproduct(cotangentVecA, cotangentVecB, basePoint)
}

// SquaredNorm computes the total space squared norm.
func (q *GraphSpaceMetric) SquaredNorm(vector, basePoint *array.Array) *array.Array {
	return q.totalMetric.SquaredNorm(vector, basePoint)
}

// Norm computes the total space norm.
func (q *GraphSpaceMetric) Norm(vector, basePoint *array.Array) *array.Array {
	return q.totalMetric.Norm(vector, basePoint)
}

// Exp follows the total space geodesic.
func (q *GraphSpaceMetric) Exp(tangentVec, basePoint *array.Array) *array.Array {
	return q.totalMetric.Exp(tangentVec, basePoint)
}

// Log aligns the point to the base point and lifts the total space Log.
func (q *GraphSpaceMetric) Log(point, basePoint *array.Array) *array.Array {
	return q.totalMetric.Log(q.AlignPointToPoint(basePoint, point), basePoint)
}

// SquaredDist computes the squared quotient distance, the total space
// squared distance after alignment.
func (q *GraphSpaceMetric) SquaredDist(pointA, pointB *array.Array) *array.Array {
	return q.totalMetric.SquaredDist(pointA, q.AlignPointToPoint(pointA, pointB))
}

// Dist computes the quotient distance.
func (q *GraphSpaceMetric) Dist(pointA, pointB *array.Array) *array.Array {
	return sqrtScalarField(q.SquaredDist(pointA, pointB))
}

// Geodesic builds the total space geodesic, aligning the end point to the
// initial point first when one is given.
func (q *GraphSpaceMetric) Geodesic(initialPoint, endPoint, initialTangentVec *array.Array) (GeodesicFunc, error) {
	if endPoint != nil && initialTangentVec == nil {
		endPoint = q.AlignPointToPoint(initialPoint, endPoint)
	}
	return q.totalMetric.Geodesic(initialPoint, endPoint, initialTangentVec)
}

// ParallelTransport transports in the flat total space.
func (q *GraphSpaceMetric) ParallelTransport(tangentVec, basePoint, direction, endPoint *array.Array) *array.Array {
	return q.totalMetric.ParallelTransport(tangentVec, basePoint, direction, endPoint)
}

// InjectivityRadius is not defined across the strata of the quotient.
func (q *GraphSpaceMetric) InjectivityRadius(basePoint *array.Array) (*array.Array, error) {
	return nil, fmt.Errorf("injectivity radius: %w", ErrNotImplemented)
}
