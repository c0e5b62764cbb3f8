// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package geometry provides the public API for Riemannian metric spaces.
//
// # Overview
//
// This package contains:
//   - Metric: the metric contract (inner products, Exp, Log, distances,
//     geodesics, parallel transport)
//   - FlatMetric: constant-matrix metrics with closed-form operations
//   - PullbackMetric: metrics induced through an immersion, with numeric
//     geodesics and ladder parallel transport
//   - GraphSpace: adjacency matrices quotiented by node relabelings
//   - Landmarks: product spaces of landmark configurations
//
// Metrics broadcast over leading batch axes the way arrays do: passing a
// stack of points to Exp, Log or Dist evaluates every element in one
// call.
//
// # Basic Usage
//
//	import (
//	    "github.com/manifold-ml/manifold/array"
//	    "github.com/manifold-ml/manifold/geometry"
//	)
//
//	func main() {
//	    metric := geometry.NewEuclideanMetric(2)
//	    a := array.FromValues(0, 0)
//	    b := array.FromValues(3, 4)
//	    fmt.Println(metric.Dist(a, b).Item()) // 5
//	}
package geometry
