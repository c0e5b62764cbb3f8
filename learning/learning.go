// Copyright 2026 Manifold ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package learning

import (
	"github.com/manifold-ml/manifold/geometry"
	"github.com/manifold-ml/manifold/internal/learning"
)

// Type aliases for public API

// AlignerMetric is the quotient metric surface the alignment estimators
// require.
type AlignerMetric = learning.AlignerMetric

// FrechetMeanConfig tunes the mean estimator.
type FrechetMeanConfig = learning.FrechetMeanConfig

// FrechetMean estimates the point minimizing the sum of squared
// distances to the samples. Flat metrics use the closed form, other
// metrics run a Riemannian gradient descent.
type FrechetMean = learning.FrechetMean

// FrechetMeanResult reports the estimate and how the descent ended.
type FrechetMeanResult = learning.FrechetMeanResult

// NewFrechetMean builds a mean estimator for the metric.
func NewFrechetMean(metric geometry.Metric, cfg FrechetMeanConfig) (*FrechetMean, error) {
	return learning.NewFrechetMean(metric, cfg)
}

// GeometricMedianConfig tunes the Weiszfeld iteration.
type GeometricMedianConfig = learning.GeometricMedianConfig

// GeometricMedian estimates the point minimizing the sum of distances to
// the samples with the Weiszfeld algorithm.
//
// Example:
//
//	metric := geometry.NewEuclideanMetric(2)
//	median, _ := learning.NewGeometricMedian(metric, learning.GeometricMedianConfig{})
//	res, _ := median.Fit(samples)
type GeometricMedian = learning.GeometricMedian

// GeometricMedianResult reports the estimate and how the iteration
// ended.
type GeometricMedianResult = learning.GeometricMedianResult

// NewGeometricMedian builds a median estimator for the metric.
func NewGeometricMedian(metric geometry.Metric, cfg GeometricMedianConfig) (*GeometricMedian, error) {
	return learning.NewGeometricMedian(metric, cfg)
}
