// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package learning provides the public API for estimators over metric
// spaces.
//
// # Overview
//
// This package contains:
//   - FrechetMean, GeometricMedian: central points of a sample set
//   - PCA, LinearRegression: flattened Euclidean models over shaped
//     points
//   - AACFrechet, AACGPC, AACRegression: align-all-and-compute
//     estimators for quotient spaces such as graph space
//   - MDM: minimum distance to mean classification
//
// Estimators are built from a config struct whose zero values select the
// defaults, validate inputs in Fit and return immutable results.
//
// # Basic Usage
//
//	import (
//	    "github.com/manifold-ml/manifold/array"
//	    "github.com/manifold-ml/manifold/geometry"
//	    "github.com/manifold-ml/manifold/learning"
//	)
//
//	func main() {
//	    metric := geometry.NewEuclideanMetric(2)
//	    mean, _ := learning.NewFrechetMean(metric, learning.FrechetMeanConfig{})
//	    x := array.MustFromSlice([]float64{0, 0, 2, 4}, array.Shape{2, 2})
//	    res, _ := mean.Fit(x)
//	    fmt.Println(res.Estimate.Data()) // [1 2]
//	}
package learning
