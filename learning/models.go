package learning

import (
	"github.com/manifold-ml/manifold/geometry"
	"github.com/manifold-ml/manifold/internal/learning"
)

// PCAConfig tunes the principal component decomposition.
type PCAConfig = learning.PCAConfig

// PCA decomposes samples of arbitrary point shape into principal
// directions through a thin SVD of the centered, flattened samples.
type PCA = learning.PCA

// PCAResult holds the fitted decomposition.
type PCAResult = learning.PCAResult

// NewPCA builds a decomposition with the given configuration.
func NewPCA(cfg PCAConfig) (*PCA, error) {
	return learning.NewPCA(cfg)
}

// LinearRegressionConfig tunes the least-squares fit.
type LinearRegressionConfig = learning.LinearRegressionConfig

// LinearRegression fits a linear map between samples of arbitrary input
// and output point shapes.
type LinearRegression = learning.LinearRegression

// LinearRegressionModel is a fitted linear map.
type LinearRegressionModel = learning.LinearRegressionModel

// NewLinearRegression builds a regressor with the given configuration.
func NewLinearRegression(cfg LinearRegressionConfig) *LinearRegression {
	return learning.NewLinearRegression(cfg)
}

// MDMConfig tunes the classifier.
type MDMConfig = learning.MDMConfig

// MDM is a minimum distance to mean classifier over any metric.
//
// Example:
//
//	est, _ := learning.NewMDM(metric, learning.MDMConfig{})
//	model, _ := est.Fit(x, labels)
//	pred, _ := model.Predict(newX)
type MDM = learning.MDM

// MDMModel holds the fitted class means.
type MDMModel = learning.MDMModel

// NewMDM builds a classifier for the metric.
func NewMDM(metric geometry.Metric, cfg MDMConfig) (*MDM, error) {
	return learning.NewMDM(metric, cfg)
}
