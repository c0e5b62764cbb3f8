package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-ml/manifold/internal/array"
)

func newGraphMetric(t *testing.T, nNodes int) *GraphSpaceMetric {
	t.Helper()
	q, err := NewGraphSpaceMetric(NewGraphSpace(nNodes), GraphSpaceConfig{})
	require.NoError(t, err)
	return q
}

func TestGraphSpaceShapes(t *testing.T) {
	s := NewGraphSpace(4)
	assert.Equal(t, 4, s.NNodes())
	assert.Equal(t, 16, s.Dim())
	assert.Equal(t, 2, s.PointNDim())
	assert.True(t, s.Shape().Equal(array.Shape{4, 4}))

	pts := s.RandomPoint(3, nil)
	assert.True(t, pts.Shape().Equal(array.Shape{3, 4, 4}))
}

func TestGraphDistVanishesOnOrbit(t *testing.T) {
	q := newGraphMetric(t, 3)
	a := array.MustFromSlice([]float64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	}, array.Shape{3, 3})
	permuted := PermutationAction{}.Act(array.FromValues(1, 0, 2), a)

	assert.InDelta(t, 0.0, q.Dist(a, permuted).Item(), 1e-10)
	assert.InDelta(t, 0.0, q.Dist(permuted, a).Item(), 1e-10)
}

func TestGraphAlignRecoversLabeling(t *testing.T) {
	q := newGraphMetric(t, 3)
	a := array.MustFromSlice([]float64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	}, array.Shape{3, 3})
	permuted := PermutationAction{}.Act(array.FromValues(2, 0, 1), a)

	aligned := q.AlignPointToPoint(a, permuted)
	assertAllClose(t, a, aligned, 1e-12)
}

func TestGraphAlignBatch(t *testing.T) {
	q := newGraphMetric(t, 3)
	a := array.MustFromSlice([]float64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	}, array.Shape{3, 3})
	perms := array.MustFromSlice([]float64{1, 0, 2, 2, 0, 1}, array.Shape{2, 3})
	batch := PermutationAction{}.Act(perms, a)
	require.True(t, batch.Shape().Equal(array.Shape{2, 3, 3}))

	aligned := q.AlignPointToPoint(a, batch)
	require.True(t, aligned.Shape().Equal(array.Shape{2, 3, 3}))
	assertAllClose(t, a, aligned.Index(0), 1e-12)
	assertAllClose(t, a, aligned.Index(1), 1e-12)
}

func TestGraphDistLessThanTotal(t *testing.T) {
	q := newGraphMetric(t, 3)
	total := q.TotalSpaceMetric()

	a := array.MustFromSlice([]float64{
		0, 3, 1,
		3, 0, 0,
		1, 0, 0,
	}, array.Shape{3, 3})
	b := array.MustFromSlice([]float64{
		0, 0, 2,
		0, 0, 3,
		2, 3, 0,
	}, array.Shape{3, 3})

	quotient := q.Dist(a, b).Item()
	upper := total.Dist(a, b).Item()
	assert.LessOrEqual(t, quotient, upper+1e-12)
	assert.Greater(t, quotient, 0.0)
}

func TestGraphLogExpConsistency(t *testing.T) {
	q := newGraphMetric(t, 3)
	a := array.MustFromSlice([]float64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	}, array.Shape{3, 3})
	b := array.MustFromSlice([]float64{
		0, 2, 2,
		2, 0, 1,
		2, 1, 0,
	}, array.Shape{3, 3})

	// Exp of the Log lands on b's orbit.
	reached := q.Exp(q.Log(b, a), a)
	assert.InDelta(t, 0.0, q.Dist(reached, b).Item(), 1e-10)
}

func TestGraphGeodesicAlignsEndPoint(t *testing.T) {
	q := newGraphMetric(t, 3)
	a := array.MustFromSlice([]float64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	}, array.Shape{3, 3})
	permuted := PermutationAction{}.Act(array.FromValues(1, 0, 2), a)

	path, err := q.Geodesic(a, permuted, nil)
	require.NoError(t, err)

	pts := path([]float64{0, 0.5, 1})
	require.True(t, pts.Shape().Equal(array.Shape{3, 3, 3}))
	// The end point aligns back onto a itself, so the path is constant.
	assertAllClose(t, a, pts.Index(0), 1e-12)
	assertAllClose(t, a, pts.Index(1), 1e-12)
	assertAllClose(t, a, pts.Index(2), 1e-12)
}

func TestGraphAlignPointToGeodesic(t *testing.T) {
	q := newGraphMetric(t, 3)
	a := array.MustFromSlice([]float64{
		0, 1, 0,
		1, 0, 2,
		0, 2, 0,
	}, array.Shape{3, 3})
	b := array.MustFromSlice([]float64{
		0, 3, 1,
		3, 0, 0,
		1, 0, 0,
	}, array.Shape{3, 3})

	path, err := q.Geodesic(a, b, nil)
	require.NoError(t, err)

	// The path runs from a to b's aligned representative, so its midpoint
	// relabels back onto itself.
	end := q.AlignPointToPoint(a, b)
	mid := a.Add(end.Sub(a).MulScalar(0.5))
	permutedMid := PermutationAction{}.Act(array.FromValues(2, 0, 1), mid)

	aligned := q.AlignPointToGeodesic(path, permutedMid)
	assertAllClose(t, mid, aligned, 1e-12)
}

func TestGraphMetricExhaustiveBound(t *testing.T) {
	_, err := NewGraphSpaceMetric(NewGraphSpace(9), GraphSpaceConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	// Raising the bound or switching aligners lifts the restriction.
	_, err = NewGraphSpaceMetric(NewGraphSpace(9), GraphSpaceConfig{Aligner: IdentityAligner{}})
	assert.NoError(t, err)
}

func TestGraphGeodesicAlignerValidation(t *testing.T) {
	_, err := NewGraphSpaceMetric(NewGraphSpace(3), GraphSpaceConfig{
		GeodesicAligner: PointToGeodesicAligner{SMin: 2, SMax: 1},
	})
	assert.Error(t, err)

	_, err = NewGraphSpaceMetric(NewGraphSpace(3), GraphSpaceConfig{
		GeodesicAligner: PointToGeodesicAligner{SMin: -1, SMax: 1, NPoints: -2},
	})
	assert.Error(t, err)
}

func TestGraphInjectivityRadiusNotImplemented(t *testing.T) {
	q := newGraphMetric(t, 3)
	_, err := q.InjectivityRadius(array.Zeros(array.Shape{3, 3}))
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestHeapPermutations(t *testing.T) {
	seen := map[[3]int]bool{}
	forEachPermutation(3, func(p []int) {
		seen[[3]int{p[0], p[1], p[2]}] = true
	})
	assert.Len(t, seen, 6)

	count := 0
	forEachPermutation(4, func(p []int) { count++ })
	assert.Equal(t, 24, count)

	forEachPermutation(1, func(p []int) {
		assert.Equal(t, []int{0}, p)
	})
}

func TestGraphExhaustiveAlignerFindsGlobalMin(t *testing.T) {
	q := newGraphMetric(t, 4)
	base := array.MustFromSlice([]float64{
		0, 1, 2, 3,
		1, 0, 4, 5,
		2, 4, 0, 6,
		3, 5, 6, 0,
	}, array.Shape{4, 4})
	permuted := PermutationAction{}.Act(array.FromValues(3, 1, 0, 2), base)

	assert.InDelta(t, 0.0, q.SquaredDist(base, permuted).Item(), 1e-10)
	assert.False(t, math.IsNaN(q.Dist(base, permuted).Item()))
}
