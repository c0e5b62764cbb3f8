package geometry

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/manifold-ml/manifold/internal/array"
)

// christoffelField evaluates the Christoffel symbols at a single point of
// shape [dim], returned as a [dim, dim, dim] array with the contravariant
// index first.
type christoffelField func(point *array.Array) *array.Array

// expODESolver integrates the geodesic equation
//
//	x'' + Gamma(x)(x', x') = 0
//
// over the unit time interval with classic fourth order Runge-Kutta steps.
type expODESolver struct {
	nSteps int
}

func newExpODESolver(nSteps int) expODESolver {
	if nSteps <= 0 {
		nSteps = defaultGeodesicSteps
	}
	return expODESolver{nSteps: nSteps}
}

// defaultGeodesicSteps is the number of integration steps used when the
// metric configuration leaves it unset.
const defaultGeodesicSteps = 100

func geodesicAcceleration(gamma christoffelField, position, velocity *array.Array) *array.Array {
	g := gamma(position)
	return array.Einsum("kij,i,j->k", g, velocity, velocity).Neg()
}

// Solve follows the geodesic leaving basePoint with velocity tangentVec and
// returns the point reached at time 1. Both inputs are single unbatched
// points of shape [dim].
func (s expODESolver) Solve(gamma christoffelField, tangentVec, basePoint *array.Array) *array.Array {
	h := 1.0 / float64(s.nSteps)
	x := basePoint.Clone()
	v := tangentVec.Clone()
	for step := 0; step < s.nSteps; step++ {
		k1x := v
		k1v := geodesicAcceleration(gamma, x, v)

		k2x := v.Add(k1v.MulScalar(h / 2))
		k2v := geodesicAcceleration(gamma, x.Add(k1x.MulScalar(h/2)), k2x)

		k3x := v.Add(k2v.MulScalar(h / 2))
		k3v := geodesicAcceleration(gamma, x.Add(k2x.MulScalar(h/2)), k3x)

		k4x := v.Add(k3v.MulScalar(h))
		k4v := geodesicAcceleration(gamma, x.Add(k3x.MulScalar(h)), k4x)

		dx := k1x.Add(k2x.MulScalar(2)).Add(k3x.MulScalar(2)).Add(k4x)
		dv := k1v.Add(k2v.MulScalar(2)).Add(k3v.MulScalar(2)).Add(k4v)
		x = x.Add(dx.MulScalar(h / 6))
		v = v.Add(dv.MulScalar(h / 6))
	}
	return x
}

// logShootingSolver inverts an exponential map by fixed-point shooting:
// the initial velocity guess is the coordinate difference, and each round
// corrects it by the damped miss between the target and the reached point.
type logShootingSolver struct {
	maxIter int
	tol     float64
	damping float64
}

func newLogShootingSolver(maxIter int, tol float64) logShootingSolver {
	if maxIter <= 0 {
		maxIter = defaultLogMaxIter
	}
	if tol <= 0 {
		tol = defaultLogTol
	}
	return logShootingSolver{maxIter: maxIter, tol: tol, damping: 1.0}
}

const (
	defaultLogMaxIter = 32
	defaultLogTol     = 1e-10
)

// Solve finds a tangent vector v with expFn(v, basePoint) close to point.
// Both points are single unbatched points of shape [dim].
func (s logShootingSolver) Solve(expFn func(tangentVec, basePoint *array.Array) *array.Array, point, basePoint *array.Array) *array.Array {
	v := point.Sub(basePoint)
	missNorm := math.Inf(1)
	for i := 0; i < s.maxIter; i++ {
		reached := expFn(v, basePoint)
		miss := point.Sub(reached)
		missNorm = math.Sqrt(miss.Square().SumAll())
		if missNorm <= s.tol {
			return v
		}
		v = v.Add(miss.MulScalar(s.damping))
	}
	log.Warn().
		Int("max_iter", s.maxIter).
		Float64("residual", missNorm).
		Float64("tol", s.tol).
		Msg("Shooting log solver did not converge")
	return v
}
