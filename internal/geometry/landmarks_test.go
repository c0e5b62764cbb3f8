package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-ml/manifold/internal/array"
)

func newEuclideanLandmarks(t *testing.T, nLandmarks, dim int) (*Landmarks, *L2Metric) {
	t.Helper()
	space, err := NewLandmarks(NewEuclidean(dim), nLandmarks)
	require.NoError(t, err)
	metric, err := NewL2Metric(space, NewEuclideanMetric(dim))
	require.NoError(t, err)
	return space, metric
}

func TestLandmarksValidation(t *testing.T) {
	_, err := NewLandmarks(NewMatrixSpace(2, 2), 3)
	assert.Error(t, err)

	_, err = NewLandmarks(NewEuclidean(2), 0)
	assert.Error(t, err)

	space, err := NewLandmarks(NewEuclidean(2), 3)
	require.NoError(t, err)
	_, err = NewL2Metric(space, NewEuclideanMetric(5))
	assert.Error(t, err)
}

func TestLandmarksShapes(t *testing.T) {
	space, _ := newEuclideanLandmarks(t, 3, 2)
	assert.Equal(t, 6, space.Dim())
	assert.Equal(t, 2, space.PointNDim())
	assert.True(t, space.Shape().Equal(array.Shape{3, 2}))
	assert.Equal(t, 3, space.NLandmarks())

	single := space.RandomPoint(1, nil)
	assert.True(t, single.Shape().Equal(array.Shape{3, 2}))

	batch := space.RandomPoint(5, nil)
	assert.True(t, batch.Shape().Equal(array.Shape{5, 3, 2}))
}

func TestL2MetricDistSumsLandmarks(t *testing.T) {
	_, metric := newEuclideanLandmarks(t, 2, 2)

	a := array.MustFromSlice([]float64{
		0, 0,
		1, 1,
	}, array.Shape{2, 2})
	b := array.MustFromSlice([]float64{
		3, 4,
		1, 2,
	}, array.Shape{2, 2})

	// First landmark moves by 5, the second by 1.
	assert.InDelta(t, 25+1, metric.SquaredDist(a, b).Item(), 1e-12)
	assert.InDelta(t, math.Sqrt(26), metric.Dist(a, b).Item(), 1e-12)
}

func TestL2MetricExpLog(t *testing.T) {
	_, metric := newEuclideanLandmarks(t, 2, 2)

	base := array.MustFromSlice([]float64{0, 0, 1, 1}, array.Shape{2, 2})
	vec := array.MustFromSlice([]float64{1, 2, -1, 0.5}, array.Shape{2, 2})

	end := metric.Exp(vec, base)
	assertAllClose(t, array.MustFromSlice([]float64{1, 2, 0, 1.5}, array.Shape{2, 2}), end, 1e-12)
	assertAllClose(t, vec, metric.Log(end, base), 1e-12)
}

func TestL2MetricInnerProduct(t *testing.T) {
	_, metric := newEuclideanLandmarks(t, 2, 2)

	base := array.Zeros(array.Shape{2, 2})
	u := array.MustFromSlice([]float64{1, 0, 2, 1}, array.Shape{2, 2})
	v := array.MustFromSlice([]float64{3, 1, 0, -2}, array.Shape{2, 2})

	// (1*3 + 0*1) + (2*0 + 1*(-2))
	assert.InDelta(t, 1.0, metric.InnerProduct(u, v, base).Item(), 1e-12)
	assert.InDelta(t, 1+4+1, metric.SquaredNorm(u, base).Item(), 1e-12)
}

func TestL2MetricGeodesic(t *testing.T) {
	_, metric := newEuclideanLandmarks(t, 2, 2)

	a := array.MustFromSlice([]float64{0, 0, 0, 0}, array.Shape{2, 2})
	b := array.MustFromSlice([]float64{2, 2, 4, 0}, array.Shape{2, 2})

	path, err := metric.Geodesic(a, b, nil)
	require.NoError(t, err)

	pts := path([]float64{0, 0.5, 1})
	require.True(t, pts.Shape().Equal(array.Shape{3, 2, 2}))
	assertAllClose(t, a, pts.Index(0), 1e-12)
	assertAllClose(t, b.MulScalar(0.5), pts.Index(1), 1e-12)
	assertAllClose(t, b, pts.Index(2), 1e-12)

	_, err = metric.Geodesic(a, nil, nil)
	assert.ErrorIs(t, err, ErrGeodesicSpec)
}

func TestL2MetricParallelTransport(t *testing.T) {
	_, metric := newEuclideanLandmarks(t, 2, 2)

	vec := array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2})
	base := array.Zeros(array.Shape{2, 2})
	end := array.Ones(array.Shape{2, 2})

	transported := metric.ParallelTransport(vec, base, nil, end)
	assertAllClose(t, vec, transported, 1e-12)
}

func TestL2MetricInjectivityRadius(t *testing.T) {
	_, metric := newEuclideanLandmarks(t, 3, 2)

	radius, err := metric.InjectivityRadius(array.Zeros(array.Shape{3, 2}))
	require.NoError(t, err)
	assert.True(t, radius.Shape().Equal(array.Shape{}))
	assert.True(t, math.IsInf(radius.Item(), 1))
}

func TestL2MetricOverSphereLandmarks(t *testing.T) {
	base := newSphereMetric(t, true)
	space, err := NewLandmarks(base.Space(), 2)
	require.NoError(t, err)
	metric, err := NewL2Metric(space, base)
	require.NoError(t, err)

	p := array.MustFromSlice([]float64{1.0, 0.2, 0.8, -0.3}, array.Shape{2, 2})
	v := array.MustFromSlice([]float64{0.1, -0.05, 0.05, 0.1}, array.Shape{2, 2})

	end := metric.Exp(v, p)
	require.True(t, end.Shape().Equal(array.Shape{2, 2}))

	// Each landmark follows its own base geodesic.
	assertAllClose(t, base.Exp(v.Index(0), p.Index(0)), end.Index(0), 1e-12)
	assertAllClose(t, base.Exp(v.Index(1), p.Index(1)), end.Index(1), 1e-12)

	// The product squared distance sums the per landmark squared distances.
	wantSq := base.SquaredDist(p.Index(0), end.Index(0)).Item() + base.SquaredDist(p.Index(1), end.Index(1)).Item()
	assert.InDelta(t, wantSq, metric.SquaredDist(p, end).Item(), 1e-8)
}
