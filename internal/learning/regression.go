package learning

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/manifold-ml/manifold/internal/array"
)

// LinearRegressionConfig tunes the least-squares fit.
type LinearRegressionConfig struct {
	// NoIntercept fits the model through the origin. Default fits an
	// intercept term.
	NoIntercept bool
}

// LinearRegression fits a linear map between samples of arbitrary input
// and output point shapes. Both sides are flattened, the coefficients are
// solved in the least-squares sense and predictions are reported back in
// the output point shape.
type LinearRegression struct {
	noIntercept bool
}

// NewLinearRegression builds a regressor with the given configuration.
func NewLinearRegression(cfg LinearRegressionConfig) *LinearRegression {
	return &LinearRegression{noIntercept: cfg.NoIntercept}
}

// LinearRegressionModel is a fitted linear map.
type LinearRegressionModel struct {
	coef      *array.Array
	intercept *array.Array
	xShape    array.Shape
	yShape    array.Shape
}

// Fit solves the least-squares problem mapping the samples of x onto the
// samples of y, both stacked along their first axis.
func (e *LinearRegression) Fit(x, y *array.Array) (*LinearRegressionModel, error) {
	if x.NDim() < 2 || y.NDim() < 2 {
		return nil, fmt.Errorf("expected samples stacked over point shapes, got %v and %v",
			x.Shape(), y.Shape())
	}
	n := x.Shape()[0]
	if y.Shape()[0] != n {
		return nil, fmt.Errorf("got %d input samples but %d output samples", n, y.Shape()[0])
	}
	if n == 0 {
		return nil, fmt.Errorf("at least one sample is required")
	}
	xShape := x.Shape()[1:].Clone()
	yShape := y.Shape()[1:].Clone()
	p := xShape.NumElements()
	q := yShape.NumElements()

	xFlat := x.Reshape(n, p)
	yFlat := y.Reshape(n, q)
	design := xFlat
	cols := p
	if !e.noIntercept {
		design = array.Concat([]*array.Array{array.Ones(array.Shape{n, 1}), xFlat}, 1)
		cols = p + 1
	}

	var sol mat.Dense
	if err := sol.Solve(array.AsDense(design), array.AsDense(yFlat)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("least-squares solve failed: %w", err)
		}
	}
	solved := array.FromDense(&sol)

	model := &LinearRegressionModel{xShape: xShape, yShape: yShape}
	if e.noIntercept {
		model.coef = solved
		model.intercept = array.Zeros(array.Shape{q})
	} else {
		model.coef = solved.Take(rangeInts(1, cols), 0)
		model.intercept = solved.Index(0)
	}
	return model, nil
}

// Predict maps the samples stacked along the first axis of x into the
// output point shape.
func (m *LinearRegressionModel) Predict(x *array.Array) (*array.Array, error) {
	if x.NDim() != len(m.xShape)+1 || !x.Shape()[1:].Equal(m.xShape) {
		return nil, fmt.Errorf("expected samples stacked over point shape %v, got %v",
			m.xShape, x.Shape())
	}
	n := x.Shape()[0]
	flat := x.Reshape(n, m.xShape.NumElements())
	pred := array.MatMul(flat, m.coef).Add(m.intercept)
	return pred.Reshape(append(array.Shape{n}, m.yShape...)...), nil
}

// Coefficients returns the fitted linear map with one output point per
// flattened input feature.
func (m *LinearRegressionModel) Coefficients() *array.Array {
	p := m.xShape.NumElements()
	return m.coef.Clone().Reshape(append(array.Shape{p}, m.yShape...)...)
}

// Intercept returns the fitted offset in the output point shape.
func (m *LinearRegressionModel) Intercept() *array.Array {
	return m.intercept.Clone().Reshape(m.yShape...)
}

func rangeInts(lo, hi int) []int {
	out := make([]int, hi-lo)
	for i := range out {
		out[i] = lo + i
	}
	return out
}
