package learning

import (
	"fmt"
	"math"
	"sort"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/geometry"
)

// MDMConfig tunes the classifier.
type MDMConfig struct {
	// Mean configures the per-class mean estimation.
	Mean FrechetMeanConfig
}

// MDM is a minimum distance to mean classifier. Fitting estimates one
// Frechet mean per class; prediction assigns each sample to the class
// whose mean is closest in the metric.
type MDM struct {
	metric geometry.Metric
	mean   *FrechetMean
}

// NewMDM builds a classifier for the metric.
func NewMDM(metric geometry.Metric, cfg MDMConfig) (*MDM, error) {
	mean, err := NewFrechetMean(metric, cfg.Mean)
	if err != nil {
		return nil, err
	}
	return &MDM{metric: metric, mean: mean}, nil
}

// MDMModel holds the fitted class means.
type MDMModel struct {
	metric  geometry.Metric
	classes []int
	means   *array.Array
}

// Fit estimates one mean per class label from the samples stacked along
// the first axis of x.
func (e *MDM) Fit(x *array.Array, y []int) (*MDMModel, error) {
	n, err := checkSamples(e.metric.Space(), x)
	if err != nil {
		return nil, err
	}
	if len(y) != n {
		return nil, fmt.Errorf("expected %d labels, got %d", n, len(y))
	}
	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]int, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	means := make([]*array.Array, len(classes))
	for j, label := range classes {
		res, err := e.mean.Fit(x.Take(byClass[label], 0))
		if err != nil {
			return nil, fmt.Errorf("mean of class %d: %w", label, err)
		}
		means[j] = res.Estimate
	}
	return &MDMModel{
		metric:  e.metric,
		classes: classes,
		means:   array.Stack(means, 0),
	}, nil
}

// Classes returns the class labels in the column order used by
// SquaredDistances and PredictProba.
func (m *MDMModel) Classes() []int {
	out := make([]int, len(m.classes))
	copy(out, m.classes)
	return out
}

// Means returns the fitted class means stacked along the first axis.
func (m *MDMModel) Means() *array.Array {
	return m.means.Clone()
}

// SquaredDistances returns the squared distance of every sample to every
// class mean, one row per sample.
func (m *MDMModel) SquaredDistances(x *array.Array) (*array.Array, error) {
	if _, err := checkSamples(m.metric.Space(), x); err != nil {
		return nil, err
	}
	return m.metric.SquaredDist(x.ExpandDims(1), m.means), nil
}

// Predict assigns each sample to the class with the closest mean.
func (m *MDMModel) Predict(x *array.Array) ([]int, error) {
	d2, err := m.SquaredDistances(x)
	if err != nil {
		return nil, err
	}
	n := d2.Shape()[0]
	c := d2.Shape()[1]
	data := d2.Data()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = m.classes[argmin(data[i*c:(i+1)*c])]
	}
	return out, nil
}

// PredictProba returns per-sample class probabilities from a softmax over
// the negated squared distances.
func (m *MDMModel) PredictProba(x *array.Array) (*array.Array, error) {
	d2, err := m.SquaredDistances(x)
	if err != nil {
		return nil, err
	}
	n := d2.Shape()[0]
	c := d2.Shape()[1]
	out := d2.Clone()
	data := out.Data()
	for i := 0; i < n; i++ {
		row := data[i*c : (i+1)*c]
		lo := row[argmin(row)]
		var total float64
		for j, v := range row {
			row[j] = math.Exp(lo - v)
			total += row[j]
		}
		for j := range row {
			row[j] /= total
		}
	}
	return out, nil
}

// Score returns the fraction of samples predicted with their true label.
func (m *MDMModel) Score(x *array.Array, y []int) (float64, error) {
	pred, err := m.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(y) != len(pred) {
		return 0, fmt.Errorf("expected %d labels, got %d", len(pred), len(y))
	}
	var hits int
	for i, label := range y {
		if pred[i] == label {
			hits++
		}
	}
	return float64(hits) / float64(len(pred)), nil
}

func argmin(row []float64) int {
	best := 0
	for i, v := range row {
		if v < row[best] {
			best = i
		}
	}
	return best
}
