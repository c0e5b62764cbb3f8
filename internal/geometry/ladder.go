package geometry

import (
	"fmt"
	"math"

	"github.com/manifold-ml/manifold/internal/array"
)

// Ladder schemes.
const (
	SchemePole   = "pole"
	SchemeSchild = "schild"
)

// LadderConfig tunes the ladder construction. The zero value performs a
// single pole ladder rung with linear scaling.
type LadderConfig struct {
	// NRungs is the number of ladder rungs. Default 1.
	NRungs int

	// Scheme selects the rung construction, SchemePole or SchemeSchild.
	// Default SchemePole.
	Scheme string

	// Alpha is the exponent scaling the climbed vector by 1/NRungs^Alpha;
	// it must be at least 1 and values up to 2 sharpen the approximation.
	// Default 1.
	Alpha float64
}

// LadderResult carries the outcome of a ladder climb.
type LadderResult struct {
	// TransportedTangentVec approximates the parallel transport of the
	// input vector to the end of the direction geodesic.
	TransportedTangentVec *array.Array

	// EndPoint is the point reached by following the direction geodesic
	// for unit time.
	EndPoint *array.Array
}

// poleLadderStep reflects the shooting point through the midpoint of the
// current geodesic segment. One step is exact on symmetric spaces.
func poleLadderStep(m Metric, basePoint, nextPoint, baseShoot *array.Array) *array.Array {
	midTangent := m.Log(nextPoint, basePoint).MulScalar(0.5)
	midPoint := m.Exp(midTangent, basePoint)
	shoot := m.Log(baseShoot, midPoint).Neg()
	endShoot := m.Exp(shoot, midPoint)
	return m.Log(endShoot, nextPoint).Neg()
}

// schildLadderStep closes a geodesic parallelogram over the current
// segment.
func schildLadderStep(m Metric, basePoint, nextPoint, baseShoot *array.Array) *array.Array {
	midTangent := m.Log(nextPoint, baseShoot).MulScalar(0.5)
	midPoint := m.Exp(midTangent, baseShoot)
	shoot := m.Log(basePoint, midPoint).Neg()
	endShoot := m.Exp(shoot, midPoint)
	return m.Log(endShoot, nextPoint)
}

// LadderParallelTransport approximates the parallel transport of tangentVec
// along the geodesic leaving basePoint in the given direction, using only
// the metric's Exp and Log. The direction geodesic is cut into NRungs
// segments and the vector, scaled down by NRungs^Alpha, is carried over
// one segment per rung; the final vector is scaled back up.
func LadderParallelTransport(m Metric, tangentVec, basePoint, direction *array.Array, cfg LadderConfig) (LadderResult, error) {
	nRungs := cfg.NRungs
	if nRungs == 0 {
		nRungs = 1
	}
	if nRungs < 1 {
		return LadderResult{}, fmt.Errorf("the number of rungs must be at least 1, got %d", nRungs)
	}
	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = 1
	}
	if alpha < 1 {
		return LadderResult{}, fmt.Errorf("alpha must be at least 1, got %g", alpha)
	}
	var step func(m Metric, basePoint, nextPoint, baseShoot *array.Array) *array.Array
	switch cfg.Scheme {
	case SchemePole, "":
		step = poleLadderStep
	case SchemeSchild:
		step = schildLadderStep
	default:
		return LadderResult{}, fmt.Errorf("unknown ladder scheme %q", cfg.Scheme)
	}

	scale := math.Pow(float64(nRungs), alpha)
	currentPoint := basePoint
	nextTangent := tangentVec.DivScalar(scale)
	baseShoot := m.Exp(nextTangent, currentPoint)
	for i := 0; i < nRungs; i++ {
		frac := float64(i+1) / float64(nRungs)
		nextPoint := m.Exp(direction.MulScalar(frac), basePoint)
		nextTangent = step(m, currentPoint, nextPoint, baseShoot)
		currentPoint = nextPoint
		baseShoot = m.Exp(nextTangent, currentPoint)
	}
	return LadderResult{
		TransportedTangentVec: nextTangent.MulScalar(scale),
		EndPoint:              m.Exp(direction, basePoint),
	}, nil
}
