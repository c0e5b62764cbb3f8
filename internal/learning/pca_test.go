package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/manifold-ml/manifold/internal/array"
)

// TestPCARankOne checks the decomposition of samples spread along a
// single direction.
func TestPCARankOne(t *testing.T) {
	est, err := NewPCA(PCAConfig{})
	require.NoError(t, err)

	// mean (1, 1) plus t * (0.6, 0.8) for t in {-3, -1, 1, 3}
	x := array.MustFromSlice([]float64{
		-0.8, -1.4,
		0.4, 0.2,
		1.6, 1.8,
		2.8, 3.4,
	}, array.Shape{4, 2})

	res, err := est.Fit(x)
	require.NoError(t, err)

	assertAllClose(t, array.MustFromSlice([]float64{1, 1}, array.Shape{2}), res.Mean, 1e-12)
	require.Len(t, res.SingularValues, 2)

	want := array.MustFromSlice([]float64{0.6, 0.8, 0.8, -0.6}, array.Shape{2, 2})
	assertAllClose(t, want, res.Components, 1e-10)

	assert.InDelta(t, 4.47213595499958, res.SingularValues[0], 1e-10)
	assert.InDelta(t, 20.0/3.0, res.ExplainedVariance[0], 1e-10)
	assert.InDelta(t, 1.0, res.ExplainedVarianceRatio[0], 1e-10)
	assert.InDelta(t, 0.0, res.ExplainedVarianceRatio[1], 1e-10)
}

// TestPCAVarianceSplit checks the ratio bookkeeping across two axes.
func TestPCAVarianceSplit(t *testing.T) {
	est, err := NewPCA(PCAConfig{})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{
		2, 0,
		-2, 0,
		0, 1,
		0, -1,
	}, array.Shape{4, 2})

	res, err := est.Fit(x)
	require.NoError(t, err)

	want := array.MustFromSlice([]float64{1, 0, 0, 1}, array.Shape{2, 2})
	assertAllClose(t, want, res.Components, 1e-10)
	assert.InDelta(t, 0.8, res.ExplainedVarianceRatio[0], 1e-10)
	assert.InDelta(t, 0.2, res.ExplainedVarianceRatio[1], 1e-10)
}

// TestPCAMatrixPoints checks that matrix-shaped samples come back in the
// matrix shape.
func TestPCAMatrixPoints(t *testing.T) {
	est, err := NewPCA(PCAConfig{NComponents: 1})
	require.NoError(t, err)

	// identity mean plus t * [[0, 0.6], [0.8, 0]] for t in {-1, 1}
	x := array.MustFromSlice([]float64{
		1, -0.6, -0.8, 1,
		1, 0.6, 0.8, 1,
	}, array.Shape{2, 2, 2})

	res, err := est.Fit(x)
	require.NoError(t, err)

	assertAllClose(t, array.Eye(2), res.Mean, 1e-12)
	require.True(t, res.Components.Shape().Equal(array.Shape{1, 2, 2}))

	want := array.MustFromSlice([]float64{0, 0.6, 0.8, 0}, array.Shape{1, 2, 2})
	assertAllClose(t, want, res.Components, 1e-10)
	assert.InDelta(t, 2.0, res.ExplainedVariance[0], 1e-10)
	assert.InDelta(t, 1.0, res.ExplainedVarianceRatio[0], 1e-10)
}

// TestPCAVarianceMatchesProjections checks the explained variances
// against the sample variance of the scores along each component.
func TestPCAVarianceMatchesProjections(t *testing.T) {
	est, err := NewPCA(PCAConfig{})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{
		2.0, 1.1, 0.3,
		-1.2, 0.8, 1.9,
		0.4, -0.7, 2.2,
		1.5, 2.3, -0.6,
		-0.9, 0.1, 0.8,
	}, array.Shape{5, 3})

	res, err := est.Fit(x)
	require.NoError(t, err)
	require.Len(t, res.ExplainedVariance, 3)

	centered := x.Sub(res.Mean)
	for j := 0; j < 3; j++ {
		scores := array.Matvec(centered, res.Components.Index(j))
		assert.InDelta(t, res.ExplainedVariance[j], stat.Variance(scores.Data(), nil), 1e-10,
			"component %d", j)
	}
}

// TestPCASingleSample checks that a lone sample yields zero variance.
func TestPCASingleSample(t *testing.T) {
	est, err := NewPCA(PCAConfig{})
	require.NoError(t, err)

	x := array.MustFromSlice([]float64{3, 4}, array.Shape{1, 2})
	res, err := est.Fit(x)
	require.NoError(t, err)

	assertAllClose(t, array.MustFromSlice([]float64{3, 4}, array.Shape{2}), res.Mean, 1e-12)
	require.Len(t, res.ExplainedVariance, 1)
	assert.Equal(t, 0.0, res.ExplainedVariance[0])
	assert.Equal(t, 0.0, res.ExplainedVarianceRatio[0])
}

// TestPCAValidation checks the configuration and input errors.
func TestPCAValidation(t *testing.T) {
	_, err := NewPCA(PCAConfig{NComponents: -1})
	assert.Error(t, err)

	est, err := NewPCA(PCAConfig{NComponents: 3})
	require.NoError(t, err)

	_, err = est.Fit(array.MustFromSlice([]float64{1, 2, 3, 4}, array.Shape{2, 2}))
	assert.Error(t, err)

	flat, err := NewPCA(PCAConfig{})
	require.NoError(t, err)
	_, err = flat.Fit(array.MustFromSlice([]float64{1, 2, 3}, array.Shape{3}))
	assert.Error(t, err)
}
