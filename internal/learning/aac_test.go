package learning

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

func newQuotientMetric(t *testing.T, nNodes int) *geometry.GraphSpaceMetric {
	t.Helper()
	metric, err := geometry.NewGraphSpaceMetric(geometry.NewGraphSpace(nNodes), geometry.GraphSpaceConfig{})
	require.NoError(t, err)
	return metric
}

// permuted relabels the nodes of a graph.
func permuted(t *testing.T, point *array.Array, perm []float64) *array.Array {
	t.Helper()
	return geometry.PermutationAction{}.Act(
		array.MustFromSlice(perm, array.Shape{len(perm)}), point)
}

// testGraph has pairwise distinct entries so every relabeling is
// recoverable.
func testGraph() *array.Array {
	return array.MustFromSlice([]float64{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	}, array.Shape{3, 3})
}

// testGraphDirection has Frobenius norm one quarter.
func testGraphDirection() *array.Array {
	return array.MustFromSlice([]float64{
		0.1, 0.05, 0,
		0, 0.2, 0,
		0, 0, -0.1,
	}, array.Shape{3, 3})
}

// TestAACFrechetOrbitData checks that relabeled copies of one graph mean
// back to its orbit in a single round.
func TestAACFrechetOrbitData(t *testing.T) {
	metric := newQuotientMetric(t, 3)
	est, err := NewAACFrechet(metric, AACFrechetConfig{Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, err)

	g := testGraph()
	x := array.Stack([]*array.Array{
		g,
		permuted(t, g, []float64{1, 2, 0}),
		permuted(t, g, []float64{2, 1, 0}),
	}, 0)

	res, err := est.Fit(x)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, metric.SquaredDist(res.Estimate, g).Item(), 1e-10)
	assert.Equal(t, 1, res.NIter)
	assert.True(t, res.Converged)
}

// TestAACFrechetPerturbedOrbit checks the estimate on noisy relabeled
// copies.
func TestAACFrechetPerturbedOrbit(t *testing.T) {
	metric := newQuotientMetric(t, 3)
	est, err := NewAACFrechet(metric, AACFrechetConfig{Rand: rand.New(rand.NewSource(7))})
	require.NoError(t, err)

	g := testGraph()
	noisy := func(i, j int, eps float64) *array.Array {
		out := g.Clone()
		out.Set(g.At(i, j)+eps, i, j)
		return out
	}
	x := array.Stack([]*array.Array{
		noisy(0, 1, 0.03),
		permuted(t, noisy(1, 2, -0.03), []float64{1, 2, 0}),
		permuted(t, noisy(2, 0, 0.03), []float64{2, 1, 0}),
	}, 0)

	res, err := est.Fit(x)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.NIter, 3)
	assert.Less(t, metric.Dist(res.Estimate, g).Item(), 0.05)
}

// TestAACFrechetDeterministicWithInitPoint checks that a pinned
// initialization makes two fits agree bit for bit.
func TestAACFrechetDeterministicWithInitPoint(t *testing.T) {
	g := testGraph()
	noisy := func(i, j int, eps float64) *array.Array {
		out := g.Clone()
		out.Set(g.At(i, j)+eps, i, j)
		return out
	}
	x := array.Stack([]*array.Array{
		noisy(0, 1, 0.03),
		permuted(t, noisy(1, 2, -0.03), []float64{1, 2, 0}),
		permuted(t, noisy(2, 0, 0.03), []float64{2, 1, 0}),
	}, 0)

	fit := func() *AACFrechetResult {
		est, err := NewAACFrechet(newQuotientMetric(t, 3), AACFrechetConfig{InitPoint: g})
		require.NoError(t, err)
		res, err := est.Fit(x)
		require.NoError(t, err)
		return res
	}

	first, second := fit(), fit()
	require.Equal(t, first.Estimate.Data(), second.Estimate.Data())
	assert.Equal(t, first.NIter, second.NIter)
	assert.Equal(t, first.Converged, second.Converged)
}

// TestAACFrechetIterationCap checks that hitting the cap still returns a
// usable estimate.
func TestAACFrechetIterationCap(t *testing.T) {
	metric := newQuotientMetric(t, 3)
	g := testGraph()
	est, err := NewAACFrechet(metric, AACFrechetConfig{MaxIter: 1, InitPoint: g})
	require.NoError(t, err)

	noisy := func(i, j int, eps float64) *array.Array {
		out := g.Clone()
		out.Set(g.At(i, j)+eps, i, j)
		return out
	}
	x := array.Stack([]*array.Array{
		noisy(0, 1, 0.03),
		permuted(t, noisy(1, 2, -0.03), []float64{1, 2, 0}),
		permuted(t, noisy(2, 0, 0.03), []float64{2, 1, 0}),
	}, 0)

	res, err := est.Fit(x)
	require.NoError(t, err)

	assert.Equal(t, 1, res.NIter)
	assert.False(t, res.Converged)
	require.True(t, res.Estimate.Shape().Equal(array.Shape{3, 3}))
	assert.Less(t, metric.Dist(res.Estimate, g).Item(), 0.05)
}

// TestAACGPCRecoversGeodesicSpread checks the principal decomposition of
// relabeled samples spread along one direction.
func TestAACGPCRecoversGeodesicSpread(t *testing.T) {
	metric := newQuotientMetric(t, 3)
	est, err := NewAACGPC(metric, AACGPCConfig{Rand: rand.New(rand.NewSource(11))})
	require.NoError(t, err)

	g := testGraph()
	d := testGraphDirection()
	along := func(s float64) *array.Array {
		return g.Add(d.MulScalar(s))
	}
	x := array.Stack([]*array.Array{
		along(-1.5),
		permuted(t, along(-0.5), []float64{1, 2, 0}),
		permuted(t, along(0.5), []float64{2, 1, 0}),
		permuted(t, along(1.5), []float64{1, 0, 2}),
	}, 0)

	res, err := est.Fit(x)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.NIter, 2)
	assert.Greater(t, res.Decomposition.ExplainedVarianceRatio[0], 0.999)

	// the fitted mean and leading direction live in some relabeling of
	// the orbit, so compare through quotient distances
	assert.InDelta(t, 0.0,
		metric.SquaredDist(res.Decomposition.Mean, g).Item(), 1e-8)

	tip := res.Decomposition.Mean.Add(res.Decomposition.Components.Index(0).MulScalar(0.25))
	assert.InDelta(t, 0.0, metric.SquaredDist(tip, g.Add(d)).Item(), 1e-8)

	require.True(t, res.AlignedPoints.Shape().Equal(array.Shape{4, 3, 3}))
}

// TestAACRegressionFitsRelabledLine checks the regression on outputs
// relabeled along an exact line.
func TestAACRegressionFitsRelabledLine(t *testing.T) {
	metric := newQuotientMetric(t, 3)
	est, err := NewAACRegression(metric, AACRegressionConfig{Rand: rand.New(rand.NewSource(5))})
	require.NoError(t, err)

	g := testGraph()
	d := testGraphDirection()
	along := func(s float64) *array.Array {
		return g.Add(d.MulScalar(s))
	}
	x := array.MustFromSlice([]float64{0, 1, 2, 3}, array.Shape{4, 1})
	y := array.Stack([]*array.Array{
		along(0),
		permuted(t, along(1), []float64{1, 2, 0}),
		permuted(t, along(2), []float64{2, 1, 0}),
		permuted(t, along(3), []float64{1, 0, 2}),
	}, 0)

	res, err := est.Fit(x, y)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.NIter, 3)

	pred, err := res.Model.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, metric.Dist(pred, y).SumAll(), 1e-6)
}

// TestAACValidation checks the configuration and input errors.
func TestAACValidation(t *testing.T) {
	metric := newQuotientMetric(t, 3)

	_, err := NewAACFrechet(metric, AACFrechetConfig{Epsilon: -1})
	assert.Error(t, err)
	_, err = NewAACFrechet(metric, AACFrechetConfig{MaxIter: -2})
	assert.Error(t, err)
	_, err = NewAACGPC(metric, AACGPCConfig{
		InitPoint: array.MustFromSlice([]float64{1, 2}, array.Shape{2}),
	})
	assert.Error(t, err)
	_, err = NewAACGPC(metric, AACGPCConfig{NComponents: -1})
	assert.Error(t, err)

	frechet, err := NewAACFrechet(metric, AACFrechetConfig{})
	require.NoError(t, err)
	_, err = frechet.Fit(array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2}))
	assert.Error(t, err)

	regression, err := NewAACRegression(metric, AACRegressionConfig{})
	require.NoError(t, err)
	_, err = regression.Fit(
		array.MustFromSlice([]float64{0, 1}, array.Shape{2, 1}),
		array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2}))
	assert.Error(t, err)
}
