package learning

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

const (
	defaultMeanMaxIter  = 32
	defaultMeanEpsilon  = 1e-4
	defaultMeanStepSize = 1.0
)

// FrechetMeanConfig tunes the mean estimator. Zero values select the
// defaults.
type FrechetMeanConfig struct {
	// Epsilon bounds the squared norm of the update tangent below which
	// the descent stops. Default 1e-4.
	Epsilon float64
	// MaxIter caps the number of descent steps. Default 32.
	MaxIter int
	// StepSize scales each descent step. Default 1.
	StepSize float64
	// InitPoint seeds the descent. Default first sample.
	InitPoint *array.Array
}

// FrechetMean estimates the point minimizing the weighted sum of squared
// distances to the samples.
//
// On flat metrics the minimizer is the arithmetic mean and is computed in
// closed form. Otherwise the estimator runs a Riemannian gradient descent,
// stepping along the average of the logs at the current estimate.
type FrechetMean struct {
	metric   geometry.Metric
	epsilon  float64
	maxIter  int
	stepSize float64
	init     *array.Array
}

// FrechetMeanResult reports the estimate together with how the descent
// ended. Closed-form solutions report zero iterations.
type FrechetMeanResult struct {
	Estimate  *array.Array
	NIter     int
	Converged bool
}

// NewFrechetMean builds a mean estimator for the metric.
func NewFrechetMean(metric geometry.Metric, cfg FrechetMeanConfig) (*FrechetMean, error) {
	if cfg.Epsilon < 0 {
		return nil, fmt.Errorf("epsilon must not be negative, got %v", cfg.Epsilon)
	}
	if cfg.MaxIter < 0 {
		return nil, fmt.Errorf("max iterations must not be negative, got %d", cfg.MaxIter)
	}
	if cfg.StepSize < 0 {
		return nil, fmt.Errorf("step size must not be negative, got %v", cfg.StepSize)
	}
	e := &FrechetMean{
		metric:   metric,
		epsilon:  cfg.Epsilon,
		maxIter:  cfg.MaxIter,
		stepSize: cfg.StepSize,
		init:     cfg.InitPoint,
	}
	if e.epsilon == 0 {
		e.epsilon = defaultMeanEpsilon
	}
	if e.maxIter == 0 {
		e.maxIter = defaultMeanMaxIter
	}
	if e.stepSize == 0 {
		e.stepSize = defaultMeanStepSize
	}
	return e, nil
}

// Fit estimates the mean of the samples stacked along the first axis of x.
func (e *FrechetMean) Fit(x *array.Array) (*FrechetMeanResult, error) {
	return e.FitWeighted(x, nil)
}

// FitWeighted estimates the mean with one weight per sample. A nil slice
// weighs samples uniformly.
func (e *FrechetMean) FitWeighted(x *array.Array, weights []float64) (*FrechetMeanResult, error) {
	n, err := checkSamples(e.metric.Space(), x)
	if err != nil {
		return nil, err
	}
	w, err := normalizeWeights(weights, n)
	if err != nil {
		return nil, err
	}
	if _, flat := e.metric.(*geometry.FlatMetric); flat {
		return &FrechetMeanResult{
			Estimate:  weightedSum(x, w),
			NIter:     0,
			Converged: true,
		}, nil
	}
	mean := e.init
	if mean == nil {
		mean = x.Index(0)
	} else if !mean.Shape().Equal(e.metric.Space().Shape()) {
		return nil, fmt.Errorf("init point shape %v does not match space shape %v",
			mean.Shape(), e.metric.Space().Shape())
	}

	nIter := 0
	converged := false
	for nIter < e.maxIter {
		nIter++
		logs := e.metric.Log(x, mean)
		tangent := weightedSum(logs, w).MulScalar(e.stepSize)
		mean = e.metric.Exp(tangent, mean)
		if e.metric.SquaredNorm(tangent, mean).Item() <= e.epsilon {
			converged = true
			break
		}
	}
	if !converged {
		log.Warn().
			Int("max_iter", e.maxIter).
			Msg("Maximum number of iterations reached. The mean may be inaccurate")
	}
	return &FrechetMeanResult{Estimate: mean, NIter: nIter, Converged: converged}, nil
}

// normalizeWeights returns per-sample weights summing to one.
func normalizeWeights(weights []float64, n int) (*array.Array, error) {
	if weights == nil {
		return array.Full(array.Shape{n}, 1.0/float64(n)), nil
	}
	if len(weights) != n {
		return nil, fmt.Errorf("expected %d weights, got %d", n, len(weights))
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("weights must sum to a positive value, got %v", total)
	}
	out := make([]float64, n)
	for i, w := range weights {
		out[i] = w / total
	}
	return array.MustFromSlice(out, array.Shape{n}), nil
}

// weightedSum contracts normalized weights against the sample axis.
func weightedSum(x, weights *array.Array) *array.Array {
	return array.Einsum("n,n...->...", weights, x)
}
