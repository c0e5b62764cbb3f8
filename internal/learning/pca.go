package learning

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/manifold-ml/manifold/internal/array"
)

// PCAConfig tunes the decomposition. Zero values select the defaults.
type PCAConfig struct {
	// NComponents is the number of principal directions to keep. Default
	// keeps all of them.
	NComponents int
}

// PCA decomposes samples of arbitrary point shape into principal
// directions. Samples are flattened, centered and factorized with a thin
// SVD; the directions are reported back in the point shape so they can be
// fed to geometric routines as tangent vectors.
type PCA struct {
	nComponents int
}

// PCAResult holds the fitted decomposition.
type PCAResult struct {
	// Mean is the sample mean in the point shape.
	Mean *array.Array
	// Components stacks the principal directions along the first axis,
	// ordered by decreasing explained variance, each in the point shape.
	Components *array.Array
	// SingularValues are the singular values of the centered sample
	// matrix for the kept components.
	SingularValues []float64
	// ExplainedVariance is the sample variance captured by each kept
	// component.
	ExplainedVariance []float64
	// ExplainedVarianceRatio is each kept component's share of the total
	// sample variance.
	ExplainedVarianceRatio []float64
}

// NewPCA builds a decomposition with the given configuration.
func NewPCA(cfg PCAConfig) (*PCA, error) {
	if cfg.NComponents < 0 {
		return nil, fmt.Errorf("number of components must not be negative, got %d", cfg.NComponents)
	}
	return &PCA{nComponents: cfg.NComponents}, nil
}

// Fit decomposes the samples stacked along the first axis of x.
func (e *PCA) Fit(x *array.Array) (*PCAResult, error) {
	if x.NDim() < 2 {
		return nil, fmt.Errorf("expected samples stacked over a point shape, got %v", x.Shape())
	}
	n := x.Shape()[0]
	if n == 0 {
		return nil, fmt.Errorf("at least one sample is required")
	}
	pointShape := x.Shape()[1:].Clone()
	d := pointShape.NumElements()
	full := min(n, d)
	k := e.nComponents
	if k == 0 {
		k = full
	}
	if k > full {
		return nil, fmt.Errorf("cannot keep %d components from %d samples of dimension %d", k, n, d)
	}

	flat := x.Reshape(n, d)
	mean := flat.Mean(0, false)
	centered := flat.Sub(mean)

	var svd mat.SVD
	if !svd.Factorize(array.AsDense(centered), mat.SVDThin) {
		return nil, fmt.Errorf("singular value decomposition did not converge")
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	components := array.Zeros(array.Shape{k, d})
	compData := components.Data()
	for j := 0; j < k; j++ {
		row := compData[j*d : (j+1)*d]
		for i := 0; i < d; i++ {
			row[i] = v.At(i, j)
		}
		flipToPositiveMax(row)
	}

	variance := make([]float64, k)
	ratio := make([]float64, k)
	singular := make([]float64, k)
	var total float64
	denom := float64(n - 1)
	for _, s := range values {
		if denom > 0 {
			total += s * s / denom
		}
	}
	for j := 0; j < k; j++ {
		singular[j] = values[j]
		if denom > 0 {
			variance[j] = values[j] * values[j] / denom
		}
		if total > 0 {
			ratio[j] = variance[j] / total
		}
	}

	return &PCAResult{
		Mean:                   mean.Reshape(pointShape...),
		Components:             components.Reshape(append(array.Shape{k}, pointShape...)...),
		SingularValues:         singular,
		ExplainedVariance:      variance,
		ExplainedVarianceRatio: ratio,
	}, nil
}

// flipToPositiveMax fixes the sign ambiguity of a principal direction by
// making its largest-magnitude entry positive.
func flipToPositiveMax(row []float64) {
	best := 0
	for i, v := range row {
		if math.Abs(v) > math.Abs(row[best]) {
			best = i
		}
	}
	if row[best] < 0 {
		for i := range row {
			row[i] = -row[i]
		}
	}
}
