package learning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

// assertAllClose checks two arrays element by element.
func assertAllClose(t *testing.T, want, got *array.Array, tol float64) {
	t.Helper()
	require.True(t, want.Shape().Equal(got.Shape()),
		"shape mismatch: want %v, got %v", want.Shape(), got.Shape())
	wd, gd := want.Data(), got.Data()
	for i := range wd {
		assert.InDelta(t, wd[i], gd[i], tol, "mismatch at index %d", i)
	}
}

// sphereMetric pulls the round metric back through spherical coordinates.
func sphereMetric(t *testing.T) geometry.Metric {
	t.Helper()
	immersion := func(p *array.Array) *array.Array {
		theta, phi := p.At(0), p.At(1)
		return array.MustFromSlice([]float64{
			math.Cos(phi) * math.Sin(theta),
			math.Sin(phi) * math.Sin(theta),
			math.Cos(theta),
		}, array.Shape{3})
	}
	m, err := geometry.NewPullbackMetric(2, 3, immersion, geometry.PullbackConfig{})
	require.NoError(t, err)
	return m
}

// TestFrechetMeanFlatClosedForm checks that flat metrics short-circuit to
// the arithmetic mean without iterating.
func TestFrechetMeanFlatClosedForm(t *testing.T) {
	metric, err := geometry.NewFlatMetric(geometry.NewEuclidean(2), nil)
	require.NoError(t, err)
	est, err := NewFrechetMean(metric, FrechetMeanConfig{})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2})
	res, err := est.Fit(x)
	require.NoError(t, err)

	assertAllClose(t, array.MustFromSlice([]float64{2, 3}, array.Shape{2}), res.Estimate, 1e-12)
	assert.Equal(t, 0, res.NIter)
	assert.True(t, res.Converged)
}

// TestFrechetMeanFlatWeighted checks the weighted closed form.
func TestFrechetMeanFlatWeighted(t *testing.T) {
	metric, err := geometry.NewFlatMetric(geometry.NewEuclidean(1), nil)
	require.NoError(t, err)
	est, err := NewFrechetMean(metric, FrechetMeanConfig{})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{0, 4}, array.Shape{2, 1})
	res, err := est.FitWeighted(x, []float64{3, 1})
	require.NoError(t, err)

	assertAllClose(t, array.MustFromSlice([]float64{1}, array.Shape{1}), res.Estimate, 1e-12)
}

// TestFrechetMeanSphereMidpoint checks that the descent finds the
// geodesic midpoint of two points on the sphere.
func TestFrechetMeanSphereMidpoint(t *testing.T) {
	metric := sphereMetric(t)
	est, err := NewFrechetMean(metric, FrechetMeanConfig{})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{
		math.Pi/2 - 0.3, 0.4,
		math.Pi/2 + 0.3, 0.4,
	}, array.Shape{2, 2})
	res, err := est.Fit(x)
	require.NoError(t, err)

	want := array.MustFromSlice([]float64{math.Pi / 2, 0.4}, array.Shape{2})
	assertAllClose(t, want, res.Estimate, 1e-3)
	assert.True(t, res.Converged)
	assert.Greater(t, res.NIter, 0)

	distA := metric.Dist(res.Estimate, x.Index(0)).Item()
	distB := metric.Dist(res.Estimate, x.Index(1)).Item()
	assert.InDelta(t, distA, distB, 1e-3)
}

// TestFrechetMeanValidation checks the configuration and input errors.
func TestFrechetMeanValidation(t *testing.T) {
	metric, err := geometry.NewFlatMetric(geometry.NewEuclidean(2), nil)
	require.NoError(t, err)

	_, err = NewFrechetMean(metric, FrechetMeanConfig{Epsilon: -1})
	assert.Error(t, err)
	_, err = NewFrechetMean(metric, FrechetMeanConfig{MaxIter: -1})
	assert.Error(t, err)
	_, err = NewFrechetMean(metric, FrechetMeanConfig{StepSize: -0.5})
	assert.Error(t, err)

	est, err := NewFrechetMean(metric, FrechetMeanConfig{})
	require.NoError(t, err)

	_, err = est.Fit(array.MustFromSlice([]float64{1, 2, 3}, array.Shape{3}))
	assert.Error(t, err)

	_, err = est.FitWeighted(array.MustFromSlice([]float64{1, 2}, array.Shape{1, 2}), []float64{1, 2})
	assert.Error(t, err)

	_, err = est.FitWeighted(array.MustFromSlice([]float64{1, 2}, array.Shape{1, 2}), []float64{0})
	assert.Error(t, err)
}

// TestFrechetMeanInitPointShape checks that a mis-shaped seed is rejected
// on curved metrics.
func TestFrechetMeanInitPointShape(t *testing.T) {
	metric := sphereMetric(t)
	est, err := NewFrechetMean(metric, FrechetMeanConfig{
		InitPoint: array.MustFromSlice([]float64{1, 2, 3}, array.Shape{3}),
	})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{1, 1, 1.2, 1}, array.Shape{2, 2})
	_, err = est.Fit(x)
	assert.Error(t, err)
}
