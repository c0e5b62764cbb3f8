// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package geometry

import (
	"github.com/manifold-ml/manifold/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

// Type aliases for public API

// Space describes a manifold of points with a fixed shape.
type Space = geometry.Space

// Euclidean is the flat vector space of a given dimension.
type Euclidean = geometry.Euclidean

// MatrixSpace is the space of m×n matrices.
type MatrixSpace = geometry.MatrixSpace

// Metric is the contract every metric implements. Capability gaps are
// reported through errors wrapping ErrNotImplemented; malformed shapes
// panic.
type Metric = geometry.Metric

// GeodesicFunc evaluates a geodesic at the given times, stacking the
// points along a time axis.
type GeodesicFunc = geometry.GeodesicFunc

// Sentinel errors for metric capability gaps and geodesic boundary
// conditions.
var (
	ErrNotImplemented = geometry.ErrNotImplemented
	ErrGeodesicSpec   = geometry.ErrGeodesicSpec
)

// NewEuclidean builds the flat vector space of the given dimension.
func NewEuclidean(dim int) *Euclidean {
	return geometry.NewEuclidean(dim)
}

// NewMatrixSpace builds the space of m×n matrices.
func NewMatrixSpace(m, n int) *MatrixSpace {
	return geometry.NewMatrixSpace(m, n)
}

// FlatMetric is a metric with a constant matrix, flat in the sense that
// exponential and logarithm reduce to addition and subtraction.
type FlatMetric = geometry.FlatMetric

// NewFlatMetric builds a flat metric on the space. On vector spaces a
// nil matrix defaults to the identity; matrix point spaces use the
// Frobenius pairing and reject an explicit matrix.
func NewFlatMetric(space Space, metricMatrix *array.Array) (*FlatMetric, error) {
	return geometry.NewFlatMetric(space, metricMatrix)
}

// NewEuclideanMetric builds the identity flat metric on the Euclidean
// space of the given dimension.
func NewEuclideanMetric(dim int) *FlatMetric {
	return geometry.NewEuclideanMetric(dim)
}
