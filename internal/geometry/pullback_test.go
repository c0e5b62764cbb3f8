package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold-ml/manifold/internal/array"
)

// sphereImmersion maps spherical coordinates (theta, phi) onto the unit
// sphere in three dimensions.
func sphereImmersion(point *array.Array) *array.Array {
	theta := point.At(0)
	phi := point.At(1)
	return array.FromValues(
		math.Cos(phi)*math.Sin(theta),
		math.Sin(phi)*math.Sin(theta),
		math.Cos(theta),
	)
}

// sphereJacobian is the closed-form Jacobian of sphereImmersion.
func sphereJacobian(point *array.Array) *array.Array {
	theta := point.At(0)
	phi := point.At(1)
	return array.MustFromSlice([]float64{
		math.Cos(phi) * math.Cos(theta), -math.Sin(phi) * math.Sin(theta),
		math.Sin(phi) * math.Cos(theta), math.Cos(phi) * math.Sin(theta),
		-math.Sin(theta), 0,
	}, array.Shape{3, 2})
}

// sphereParallelTransport transports the embedded tangent w at the
// embedded point p along the great circle spanned by the embedded tangent
// v, in closed form.
func sphereParallelTransport(w, v, p *array.Array) *array.Array {
	normV := math.Sqrt(array.Dot(v, v))
	vHat := v.DivScalar(normV)
	c := array.Dot(w, vHat)
	wPerp := w.Sub(vHat.MulScalar(c))
	rotated := vHat.MulScalar(math.Cos(normV)).Sub(p.MulScalar(math.Sin(normV)))
	return wPerp.Add(rotated.MulScalar(c))
}

func newSphereMetric(t *testing.T, analyticJacobian bool) *PullbackMetric {
	t.Helper()
	cfg := PullbackConfig{}
	if analyticJacobian {
		cfg.Jacobian = sphereJacobian
	}
	m, err := NewPullbackMetric(2, 3, sphereImmersion, cfg)
	require.NoError(t, err)
	return m
}

func TestPullbackMetricValidation(t *testing.T) {
	_, err := NewPullbackMetric(0, 3, sphereImmersion, PullbackConfig{})
	assert.Error(t, err)

	_, err = NewPullbackMetric(3, 2, sphereImmersion, PullbackConfig{})
	assert.Error(t, err)

	_, err = NewPullbackMetric(2, 3, nil, PullbackConfig{})
	assert.Error(t, err)
}

func TestPullbackJacobianMatchesAnalytic(t *testing.T) {
	m := newSphereMetric(t, false)
	point := array.FromValues(0.7, 0.3)

	got := m.JacobianImmersion(point)
	assertAllClose(t, sphereJacobian(point), got, 1e-6)
}

func TestPullbackMetricMatrixSphere(t *testing.T) {
	theta := 0.7
	point := array.FromValues(theta, 0.3)
	want := array.MustFromSlice([]float64{
		1, 0,
		0, math.Sin(theta) * math.Sin(theta),
	}, array.Shape{2, 2})

	numeric := newSphereMetric(t, false)
	got, err := numeric.MetricMatrix(point)
	require.NoError(t, err)
	assertAllClose(t, want, got, 1e-6)

	analytic := newSphereMetric(t, true)
	got, err = analytic.MetricMatrix(point)
	require.NoError(t, err)
	assertAllClose(t, want, got, 1e-12)

	// Batched base points produce one matrix per point.
	batch := array.MustFromSlice([]float64{0.7, 0.3, 1.1, -0.4}, array.Shape{2, 2})
	mats, err := analytic.MetricMatrix(batch)
	require.NoError(t, err)
	require.True(t, mats.Shape().Equal(array.Shape{2, 2, 2}))
	assert.InDelta(t, math.Sin(1.1)*math.Sin(1.1), mats.At(1, 1, 1), 1e-12)
}

func TestPullbackCometricInverts(t *testing.T) {
	m := newSphereMetric(t, true)
	point := array.FromValues(0.9, -0.2)

	metric, err := m.MetricMatrix(point)
	require.NoError(t, err)
	cometric, err := m.CometricMatrix(point)
	require.NoError(t, err)

	assertAllClose(t, array.Eye(2), array.MatMul(metric, cometric), 1e-10)
}

func TestPullbackInnerProductMatchesEmbedding(t *testing.T) {
	m := newSphereMetric(t, true)
	point := array.FromValues(0.8, 0.4)
	v := array.FromValues(0.3, -0.2)
	w := array.FromValues(-0.1, 0.5)

	intrinsic := m.InnerProduct(v, w, point).Item()
	embedded := array.Dot(m.TangentImmersion(v, point), m.TangentImmersion(w, point))
	assert.InDelta(t, embedded, intrinsic, 1e-10)
}

func TestPullbackChristoffelsSphere(t *testing.T) {
	m := newSphereMetric(t, true)
	theta := math.Pi / 3
	point := array.FromValues(theta, 0.7)

	gamma, err := m.Christoffels(point)
	require.NoError(t, err)
	require.True(t, gamma.Shape().Equal(array.Shape{2, 2, 2}))

	cot := math.Cos(theta) / math.Sin(theta)
	assert.InDelta(t, -math.Sin(theta)*math.Cos(theta), gamma.At(0, 1, 1), 1e-5)
	assert.InDelta(t, cot, gamma.At(1, 0, 1), 1e-5)
	assert.InDelta(t, cot, gamma.At(1, 1, 0), 1e-5)
	assert.InDelta(t, 0.0, gamma.At(0, 0, 0), 1e-5)
}

func TestPullbackExpMatchesGreatCircle(t *testing.T) {
	m := newSphereMetric(t, true)
	base := array.FromValues(math.Pi/3, math.Pi/5)
	vec := array.FromValues(0.2, -0.1)

	reached := m.Immersion(m.Exp(vec, base))

	p := sphereImmersion(base)
	w := array.Matvec(sphereJacobian(base), vec)
	normW := math.Sqrt(array.Dot(w, w))
	want := p.MulScalar(math.Cos(normW)).Add(w.MulScalar(math.Sin(normW) / normW))

	assertAllClose(t, want, reached, 1e-4)
}

func TestPullbackLogRoundtrip(t *testing.T) {
	m := newSphereMetric(t, true)
	base := array.FromValues(1.1, 0.4)
	vec := array.FromValues(-0.15, 0.25)

	end := m.Exp(vec, base)
	assertAllClose(t, vec, m.Log(end, base), 1e-6)
}

func TestPullbackExpBatch(t *testing.T) {
	m := newSphereMetric(t, true)
	base := array.FromValues(math.Pi / 3, math.Pi / 5)
	vecs := array.MustFromSlice([]float64{0.2, -0.1, -0.05, 0.15}, array.Shape{2, 2})

	batch := m.Exp(vecs, base)
	require.True(t, batch.Shape().Equal(array.Shape{2, 2}))
	assertAllClose(t, m.Exp(vecs.Index(0), base), batch.Index(0), 1e-12)
	assertAllClose(t, m.Exp(vecs.Index(1), base), batch.Index(1), 1e-12)
}

func TestPullbackGeodesicEndpoints(t *testing.T) {
	m := newSphereMetric(t, true)
	init := array.FromValues(1.0, 0.2)
	end := m.Exp(array.FromValues(0.2, 0.1), init)

	path, err := m.Geodesic(init, end, nil)
	require.NoError(t, err)

	pts := path([]float64{0, 1})
	require.True(t, pts.Shape().Equal(array.Shape{2, 2}))
	assertAllClose(t, init, pts.Index(0), 1e-8)
	assertAllClose(t, end, pts.Index(1), 1e-5)
}

func TestPullbackGeodesicSpec(t *testing.T) {
	m := newSphereMetric(t, true)
	init := array.FromValues(1.0, 0.2)

	_, err := m.Geodesic(init, nil, nil)
	assert.ErrorIs(t, err, ErrGeodesicSpec)

	_, err = m.Geodesic(init, init, array.FromValues(0.1, 0.1))
	assert.ErrorIs(t, err, ErrGeodesicSpec)
}

func TestPullbackLadderTransportSphere(t *testing.T) {
	m := newSphereMetric(t, true)
	base := array.FromValues(math.Pi/3, math.Pi/5)
	tangent := array.FromValues(0.1, 0.05)
	direction := array.FromValues(0.15, -0.1)

	res, err := LadderParallelTransport(m, tangent, base, direction, LadderConfig{})
	require.NoError(t, err)

	got := m.TangentImmersion(res.TransportedTangentVec, res.EndPoint)

	p := sphereImmersion(base)
	w := array.Matvec(sphereJacobian(base), tangent)
	v := array.Matvec(sphereJacobian(base), direction)
	want := sphereParallelTransport(w, v, p)

	assertAllClose(t, want, got, 1e-4)
	assertAllClose(t, m.Exp(direction, base), res.EndPoint, 1e-10)
}

func TestLadderConfigValidation(t *testing.T) {
	m := newSphereMetric(t, true)
	base := array.FromValues(1.0, 0.2)
	tangent := array.FromValues(0.1, 0.0)
	direction := array.FromValues(0.0, 0.1)

	_, err := LadderParallelTransport(m, tangent, base, direction, LadderConfig{NRungs: -1})
	assert.Error(t, err)

	_, err = LadderParallelTransport(m, tangent, base, direction, LadderConfig{Alpha: 0.5})
	assert.Error(t, err)

	_, err = LadderParallelTransport(m, tangent, base, direction, LadderConfig{Scheme: "rope"})
	assert.Error(t, err)

	res, err := LadderParallelTransport(m, tangent, base, direction, LadderConfig{NRungs: 2, Scheme: SchemeSchild, Alpha: 1})
	require.NoError(t, err)
	assert.True(t, res.TransportedTangentVec.Shape().Equal(array.Shape{2}))
}

func TestPullbackInjectivityRadiusNotImplemented(t *testing.T) {
	m := newSphereMetric(t, true)
	_, err := m.InjectivityRadius(array.FromValues(1.0, 0.2))
	assert.ErrorIs(t, err, ErrNotImplemented)
}
