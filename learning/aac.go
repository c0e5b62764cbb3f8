package learning

import (
	"github.com/manifold-ml/manifold/internal/learning"
)

// AACFrechetConfig tunes the quotient mean estimator.
type AACFrechetConfig = learning.AACFrechetConfig

// AACFrechet estimates a Frechet mean on a quotient space by alternating
// alignment of the samples with averaging in the total space.
//
// Example:
//
//	space := geometry.NewGraphSpace(4)
//	metric, _ := geometry.NewGraphSpaceMetric(space, geometry.GraphSpaceConfig{})
//	est, _ := learning.NewAACFrechet(metric, learning.AACFrechetConfig{})
//	res, _ := est.Fit(graphs) // graphs stacked along the first axis
type AACFrechet = learning.AACFrechet

// AACFrechetResult reports the estimate and how the alternation ended.
type AACFrechetResult = learning.AACFrechetResult

// NewAACFrechet builds a quotient mean estimator for the metric.
func NewAACFrechet(metric AlignerMetric, cfg AACFrechetConfig) (*AACFrechet, error) {
	return learning.NewAACFrechet(metric, cfg)
}

// AACGPCConfig tunes the quotient principal component estimator.
type AACGPCConfig = learning.AACGPCConfig

// AACGPC estimates generalized geodesic principal components on a
// quotient space by alternating decomposition with alignment to the
// leading principal geodesic.
type AACGPC = learning.AACGPC

// AACGPCResult reports the decomposition of the aligned samples.
type AACGPCResult = learning.AACGPCResult

// NewAACGPC builds a quotient principal component estimator for the
// metric.
func NewAACGPC(metric AlignerMetric, cfg AACGPCConfig) (*AACGPC, error) {
	return learning.NewAACGPC(metric, cfg)
}

// AACRegressionConfig tunes the quotient regression estimator.
type AACRegressionConfig = learning.AACRegressionConfig

// AACRegression fits a regression onto a quotient space by alternating
// alignment of the outputs to the predictions with refitting in the
// total space.
type AACRegression = learning.AACRegression

// AACRegressionResult reports the fitted model and how the alternation
// ended.
type AACRegressionResult = learning.AACRegressionResult

// NewAACRegression builds a quotient regression estimator for the
// metric.
func NewAACRegression(metric AlignerMetric, cfg AACRegressionConfig) (*AACRegression, error) {
	return learning.NewAACRegression(metric, cfg)
}
