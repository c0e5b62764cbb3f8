// Package learning implements estimators over Riemannian metric spaces:
// Frechet means, geometric medians, alignment-based statistics on quotient
// spaces and a nearest-mean classifier.
//
// Estimators are configured at construction and keep no fit state: Fit
// validates its inputs, runs to convergence or an iteration cap and
// returns an immutable result. Randomized initializations draw from an
// injected rand source so runs can be reproduced.
package learning

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

// AlignerMetric is the metric surface the alignment estimators drive: a
// quotient metric that can match orbit representatives between points and
// against geodesics, and exposes the total space metric the statistics
// are computed in.
type AlignerMetric interface {
	geometry.Metric

	// TotalSpaceMetric returns the metric of the space the quotient is
	// built from.
	TotalSpaceMetric() geometry.Metric

	// AlignPointToPoint returns the representative of each point's orbit
	// closest to the base point, broadcasting pairwise over batch axes.
	AlignPointToPoint(basePoint, point *array.Array) *array.Array

	// AlignPointToGeodesic returns the representative of each point's
	// orbit closest to the geodesic.
	AlignPointToGeodesic(geodesic geometry.GeodesicFunc, point *array.Array) *array.Array
}

// ensureRNG falls back to a time-seeded source when none is injected.
func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// warnMaxIterations logs when an estimator used up its iteration budget,
// converged on the last round or not.
func warnMaxIterations(iteration, maxIter int) {
	if iteration == maxIter {
		log.Warn().
			Int("max_iter", maxIter).
			Msg("Maximum number of iterations reached. The estimate may be inaccurate")
	}
}

// checkSamples validates that x stacks samples of the space's point shape
// along one leading axis and returns the sample count.
func checkSamples(space geometry.Space, x *array.Array) (int, error) {
	want := space.Shape()
	if x.NDim() != len(want)+1 || !x.Shape()[1:].Equal(want) {
		return 0, fmt.Errorf("expected samples stacked over point shape %v, got %v", want, x.Shape())
	}
	n := x.Shape()[0]
	if n == 0 {
		return 0, fmt.Errorf("at least one sample is required")
	}
	return n, nil
}
