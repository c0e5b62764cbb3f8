package learning

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

const (
	defaultAACEpsilon = 1e-6
	defaultAACMaxIter = 20
)

var _ AlignerMetric = (*geometry.GraphSpaceMetric)(nil)

// aacLoop carries the settings shared by the align-all-and-compute
// estimators.
type aacLoop struct {
	metric  AlignerMetric
	epsilon float64
	maxIter int
	init    *array.Array
	rng     *rand.Rand
}

func newAACLoop(metric AlignerMetric, epsilon float64, maxIter int, init *array.Array, rng *rand.Rand) (aacLoop, error) {
	if epsilon < 0 {
		return aacLoop{}, fmt.Errorf("epsilon must not be negative, got %v", epsilon)
	}
	if maxIter < 0 {
		return aacLoop{}, fmt.Errorf("max iterations must not be negative, got %d", maxIter)
	}
	if init != nil && !init.Shape().Equal(metric.Space().Shape()) {
		return aacLoop{}, fmt.Errorf("init point shape %v does not match space shape %v",
			init.Shape(), metric.Space().Shape())
	}
	l := aacLoop{metric: metric, epsilon: epsilon, maxIter: maxIter, init: init, rng: rng}
	if l.epsilon == 0 {
		l.epsilon = defaultAACEpsilon
	}
	if l.maxIter == 0 {
		l.maxIter = defaultAACMaxIter
	}
	return l, nil
}

// initPoint returns the configured seed or a uniformly drawn sample.
func (l aacLoop) initPoint(x *array.Array, n int) *array.Array {
	if l.init != nil {
		return l.init
	}
	return x.Index(ensureRNG(l.rng).Intn(n))
}

// AACFrechetConfig tunes the mean estimator. Zero values select the
// defaults.
type AACFrechetConfig struct {
	// Epsilon bounds the move of the estimate between rounds below which
	// the loop stops. Default 1e-6.
	Epsilon float64
	// MaxIter caps the number of align-and-average rounds. Default 20.
	MaxIter int
	// InitPoint seeds the alignment. Default a random sample.
	InitPoint *array.Array
	// Rand drives the random initialization. Default a time-seeded
	// source.
	Rand *rand.Rand
	// Mean configures the total space mean computed each round.
	Mean FrechetMeanConfig
}

// AACFrechet estimates a Frechet mean on a quotient space by alternating
// two steps: align every sample to the current estimate, then average the
// aligned samples in the total space.
type AACFrechet struct {
	loop aacLoop
	mean *FrechetMean
}

// AACFrechetResult reports the estimate together with how the alternation
// ended.
type AACFrechetResult struct {
	Estimate  *array.Array
	NIter     int
	Converged bool
}

// NewAACFrechet builds a quotient mean estimator for the metric.
func NewAACFrechet(metric AlignerMetric, cfg AACFrechetConfig) (*AACFrechet, error) {
	loop, err := newAACLoop(metric, cfg.Epsilon, cfg.MaxIter, cfg.InitPoint, cfg.Rand)
	if err != nil {
		return nil, err
	}
	mean, err := NewFrechetMean(metric.TotalSpaceMetric(), cfg.Mean)
	if err != nil {
		return nil, err
	}
	return &AACFrechet{loop: loop, mean: mean}, nil
}

// Fit estimates the mean of the samples stacked along the first axis
// of x.
func (e *AACFrechet) Fit(x *array.Array) (*AACFrechetResult, error) {
	n, err := checkSamples(e.loop.metric.Space(), x)
	if err != nil {
		return nil, err
	}
	total := e.loop.metric.TotalSpaceMetric()
	prev := e.loop.initPoint(x, n)
	aligned := x
	estimate := prev

	nIter := 0
	converged := false
	for nIter < e.loop.maxIter {
		nIter++
		aligned = e.loop.metric.AlignPointToPoint(prev, aligned)
		res, err := e.mean.Fit(aligned)
		if err != nil {
			return nil, err
		}
		estimate = res.Estimate
		move := total.Dist(prev, estimate).Item()
		prev = estimate
		if move <= e.loop.epsilon {
			converged = true
			break
		}
	}
	warnMaxIterations(nIter, e.loop.maxIter)
	return &AACFrechetResult{Estimate: estimate, NIter: nIter, Converged: converged}, nil
}

// AACGPCConfig tunes the principal component estimator. Zero values
// select the defaults.
type AACGPCConfig struct {
	// Epsilon bounds the change of the leading explained variance ratio
	// between rounds below which the loop stops. Default 1e-6.
	Epsilon float64
	// MaxIter caps the number of align-and-decompose rounds. Default 20.
	MaxIter int
	// InitPoint seeds the alignment. Default a random sample.
	InitPoint *array.Array
	// Rand drives the random initialization. Default a time-seeded
	// source.
	Rand *rand.Rand
	// NComponents is the number of principal directions to keep.
	// Default 2.
	NComponents int
}

// AACGPC estimates generalized geodesic principal components on a
// quotient space by alternating two steps: decompose the aligned samples,
// then realign every sample to the geodesic spanned by the leading
// component.
type AACGPC struct {
	loop aacLoop
	pca  *PCA
}

// AACGPCResult reports the fitted decomposition of the aligned samples
// together with how the alternation ended.
type AACGPCResult struct {
	// Decomposition is the principal decomposition of the aligned
	// samples from the final round.
	Decomposition *PCAResult
	// AlignedPoints are the samples aligned to the principal geodesic.
	AlignedPoints *array.Array
	NIter         int
	Converged     bool
}

// NewAACGPC builds a quotient principal component estimator for the
// metric.
func NewAACGPC(metric AlignerMetric, cfg AACGPCConfig) (*AACGPC, error) {
	loop, err := newAACLoop(metric, cfg.Epsilon, cfg.MaxIter, cfg.InitPoint, cfg.Rand)
	if err != nil {
		return nil, err
	}
	nComponents := cfg.NComponents
	if nComponents == 0 {
		nComponents = 2
	}
	pca, err := NewPCA(PCAConfig{NComponents: nComponents})
	if err != nil {
		return nil, err
	}
	return &AACGPC{loop: loop, pca: pca}, nil
}

// Fit estimates the principal components of the samples stacked along the
// first axis of x.
func (e *AACGPC) Fit(x *array.Array) (*AACGPCResult, error) {
	n, err := checkSamples(e.loop.metric.Space(), x)
	if err != nil {
		return nil, err
	}
	total := e.loop.metric.TotalSpaceMetric()
	aligned := e.loop.metric.AlignPointToPoint(e.loop.initPoint(x, n), x)
	res, err := e.pca.Fit(aligned)
	if err != nil {
		return nil, err
	}
	prevExpl := res.ExplainedVarianceRatio[0]

	nIter := 0
	converged := false
	for nIter < e.loop.maxIter {
		nIter++
		geodesic, err := total.Geodesic(res.Mean, nil, res.Components.Index(0))
		if err != nil {
			return nil, err
		}
		aligned = e.loop.metric.AlignPointToGeodesic(geodesic, aligned)
		res, err = e.pca.Fit(aligned)
		if err != nil {
			return nil, err
		}
		expl := res.ExplainedVarianceRatio[0]
		change := math.Abs(expl - prevExpl)
		prevExpl = expl
		if change <= e.loop.epsilon {
			converged = true
			break
		}
	}
	warnMaxIterations(nIter, e.loop.maxIter)
	return &AACGPCResult{
		Decomposition: res,
		AlignedPoints: aligned,
		NIter:         nIter,
		Converged:     converged,
	}, nil
}

// AACRegressionConfig tunes the regression estimator. Zero values select
// the defaults.
type AACRegressionConfig struct {
	// Epsilon bounds the total move of the predictions between rounds
	// below which the loop stops. Default 1e-6.
	Epsilon float64
	// MaxIter caps the number of align-and-regress rounds. Default 20.
	MaxIter int
	// InitPoint seeds the alignment of the outputs. Default a random
	// output sample.
	InitPoint *array.Array
	// Rand drives the random initialization. Default a time-seeded
	// source.
	Rand *rand.Rand
	// Regression configures the total space fit run each round.
	Regression LinearRegressionConfig
}

// AACRegression fits a regression onto a quotient space by alternating
// two steps: align every output sample to the current predictions, then
// refit the regression in the total space.
type AACRegression struct {
	loop      aacLoop
	regressor *LinearRegression
}

// AACRegressionResult reports the fitted model together with how the
// alternation ended.
type AACRegressionResult struct {
	// Model predicts total space representatives for new inputs.
	Model     *LinearRegressionModel
	NIter     int
	Converged bool
}

// NewAACRegression builds a quotient regression estimator for the metric.
func NewAACRegression(metric AlignerMetric, cfg AACRegressionConfig) (*AACRegression, error) {
	loop, err := newAACLoop(metric, cfg.Epsilon, cfg.MaxIter, cfg.InitPoint, cfg.Rand)
	if err != nil {
		return nil, err
	}
	return &AACRegression{loop: loop, regressor: NewLinearRegression(cfg.Regression)}, nil
}

// Fit regresses the output samples of y, which live on the quotient
// space, onto the input samples of x, both stacked along their first
// axis.
func (e *AACRegression) Fit(x, y *array.Array) (*AACRegressionResult, error) {
	n, err := checkSamples(e.loop.metric.Space(), y)
	if err != nil {
		return nil, err
	}
	alignedY := e.loop.metric.AlignPointToPoint(e.loop.initPoint(y, n), y)
	model, err := e.regressor.Fit(x, alignedY)
	if err != nil {
		return nil, err
	}
	prevPred, err := model.Predict(x)
	if err != nil {
		return nil, err
	}

	nIter := 0
	converged := false
	for nIter < e.loop.maxIter {
		nIter++
		alignedY = e.loop.metric.AlignPointToPoint(prevPred, alignedY)
		model, err = e.regressor.Fit(x, alignedY)
		if err != nil {
			return nil, err
		}
		pred, err := model.Predict(x)
		if err != nil {
			return nil, err
		}
		move := e.loop.metric.Dist(prevPred, pred).SumAll()
		prevPred = pred
		if move <= e.loop.epsilon {
			converged = true
			break
		}
	}
	warnMaxIterations(nIter, e.loop.maxIter)
	return &AACRegressionResult{Model: model, NIter: nIter, Converged: converged}, nil
}
