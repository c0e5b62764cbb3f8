package geometry

import (
	"github.com/manifold-ml/manifold/internal/geometry"
)

// Landmarks is the space of ordered landmark configurations over a base
// space, with (nLandmarks, baseDim) points.
type Landmarks = geometry.Landmarks

// NewLandmarks builds the configuration space of nLandmarks points on
// the base space.
func NewLandmarks(base Space, nLandmarks int) (*Landmarks, error) {
	return geometry.NewLandmarks(base, nLandmarks)
}

// L2Metric is the product metric on landmark configurations: base
// operations apply landmark by landmark and scalars sum over landmarks.
type L2Metric = geometry.L2Metric

// NewL2Metric builds the product of the base metric over the landmarks
// of the space.
func NewL2Metric(space *Landmarks, baseMetric Metric) (*L2Metric, error) {
	return geometry.NewL2Metric(space, baseMetric)
}
