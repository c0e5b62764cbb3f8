package learning

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

const (
	defaultMedianMaxIter = 100
	defaultMedianLR      = 1.0
)

// GeometricMedianConfig tunes the Weiszfeld iteration. Zero values select
// the defaults.
type GeometricMedianConfig struct {
	// MaxIter is the number of Weiszfeld updates to run. Default 100.
	MaxIter int
	// LR scales each update step. Default 1.
	LR float64
	// InitPoint seeds the iteration. Default first sample.
	InitPoint *array.Array
	// Epsilon, when positive, stops the iteration early once the median
	// moves less than it between updates. Zero runs all MaxIter updates.
	Epsilon float64
}

// GeometricMedian estimates the point minimizing the weighted sum of
// distances to the samples with the Weiszfeld algorithm. Each update pulls
// the current estimate along the distance-weighted average of the logs to
// the samples.
type GeometricMedian struct {
	metric  geometry.Metric
	maxIter int
	lr      float64
	init    *array.Array
	epsilon float64
}

// GeometricMedianResult reports the estimate together with how the
// iteration ended. Without an epsilon the iteration runs all MaxIter
// updates, so Converged then only reports an estimate pinned on a
// stationary sample.
type GeometricMedianResult struct {
	Estimate  *array.Array
	NIter     int
	Converged bool
}

// NewGeometricMedian builds a median estimator for the metric.
func NewGeometricMedian(metric geometry.Metric, cfg GeometricMedianConfig) (*GeometricMedian, error) {
	if cfg.MaxIter < 0 {
		return nil, fmt.Errorf("max iterations must not be negative, got %d", cfg.MaxIter)
	}
	if cfg.LR < 0 {
		return nil, fmt.Errorf("learning rate must not be negative, got %v", cfg.LR)
	}
	if cfg.Epsilon < 0 {
		return nil, fmt.Errorf("epsilon must not be negative, got %v", cfg.Epsilon)
	}
	e := &GeometricMedian{
		metric:  metric,
		maxIter: cfg.MaxIter,
		lr:      cfg.LR,
		init:    cfg.InitPoint,
		epsilon: cfg.Epsilon,
	}
	if e.maxIter == 0 {
		e.maxIter = defaultMedianMaxIter
	}
	if e.lr == 0 {
		e.lr = defaultMedianLR
	}
	return e, nil
}

// Fit estimates the median of the samples stacked along the first axis
// of x.
func (e *GeometricMedian) Fit(x *array.Array) (*GeometricMedianResult, error) {
	return e.FitWeighted(x, nil)
}

// FitWeighted estimates the median with one weight per sample. A nil
// slice weighs samples uniformly.
func (e *GeometricMedian) FitWeighted(x *array.Array, weights []float64) (*GeometricMedianResult, error) {
	n, err := checkSamples(e.metric.Space(), x)
	if err != nil {
		return nil, err
	}
	w, err := normalizeWeights(weights, n)
	if err != nil {
		return nil, err
	}
	median := e.init
	if median == nil {
		median = x.Index(0)
	} else if !median.Shape().Equal(e.metric.Space().Shape()) {
		return nil, fmt.Errorf("init point shape %v does not match space shape %v",
			median.Shape(), e.metric.Space().Shape())
	}

	nIter := 0
	converged := false
	for nIter < e.maxIter {
		nIter++
		next, stuck := e.update(median, x, w)
		if stuck {
			converged = true
			break
		}
		if e.epsilon > 0 && e.metric.Dist(next, median).Item() < e.epsilon {
			median = next
			converged = true
			break
		}
		median = next
	}
	if e.epsilon > 0 && !converged {
		log.Warn().
			Int("max_iter", e.maxIter).
			Float64("epsilon", e.epsilon).
			Msg("Maximum number of iterations reached. The estimate may be inaccurate")
	}
	return &GeometricMedianResult{Estimate: median, NIter: nIter, Converged: converged}, nil
}

// update performs one Weiszfeld step. Samples sitting at the current
// estimate would divide by zero, so they are left out of the pull and
// instead anchor the estimate with their weight: when that weight beats
// the pull of the remaining samples the estimate is the median and stuck
// is reported, otherwise only the surplus pull is applied.
func (e *GeometricMedian) update(median, x, weights *array.Array) (next *array.Array, stuck bool) {
	dists := e.metric.Dist(median, x).Data()
	wd := weights.Data()
	mul := make([]float64, len(dists))
	var total, atMedian float64
	for i, d := range dists {
		if d <= array.Atol {
			atMedian += wd[i]
			continue
		}
		mul[i] = wd[i] / d
		total += mul[i]
	}
	if total == 0 {
		return median, true
	}
	logs := e.metric.Log(x, median)
	pull := array.Einsum("n,n...->...", array.MustFromSlice(mul, array.Shape{len(mul)}), logs)
	if atMedian > 0 {
		r := e.metric.Norm(pull, median).Item()
		if atMedian >= r {
			return median, true
		}
		pull = pull.MulScalar(1 - atMedian/r)
	}
	return e.metric.Exp(pull.MulScalar(e.lr/total), median), false
}
