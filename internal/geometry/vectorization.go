package geometry

import (
	"fmt"

	"github.com/manifold-ml/manifold/internal/array"
	"github.com/manifold-ml/manifold/internal/parallel"
)

// isBatch reports whether any of the given arrays carries batch axes on top
// of a single point's pointNDim axes. Nil entries are skipped.
func isBatch(pointNDim int, points ...*array.Array) bool {
	for _, p := range points {
		if p != nil && p.NDim() > pointNDim {
			return true
		}
	}
	return false
}

// batchShape returns the broadcast combination of the leading batch axes of
// all non-nil arrays, where each contributes its shape minus the trailing
// pointNDim point axes.
func batchShape(pointNDim int, points ...*array.Array) array.Shape {
	shapes := make([]array.Shape, 0, len(points))
	for _, p := range points {
		if p == nil || p.NDim() <= pointNDim {
			continue
		}
		shapes = append(shapes, p.Shape()[:p.NDim()-pointNDim])
	}
	combined, err := array.BroadcastAll(shapes...)
	if err != nil {
		panic(fmt.Sprintf("batch axes not compatible: %v", err))
	}
	return combined
}

// repeatOut broadcasts out, whose trailing axes are outShape, across the
// batch axes of the given point arrays. With no batch axes out is returned
// unchanged.
func repeatOut(pointNDim int, out *array.Array, outShape array.Shape, points ...*array.Array) *array.Array {
	batch := batchShape(pointNDim, points...)
	if len(batch) == 0 {
		return out
	}
	target := append(batch.Clone(), outShape...)
	return out.BroadcastTo(target)
}

// stackTimeAxis joins per-time snapshots of shape [batch..., point...] into
// a single array with the time axis between the batch and point axes.
func stackTimeAxis(pointNDim int, snapshots []*array.Array) *array.Array {
	axis := snapshots[0].NDim() - pointNDim
	return array.Stack(snapshots, axis)
}

// sumOverPointAxes reduces the trailing point axes, leaving the batch axes.
func sumOverPointAxes(a *array.Array, pointNDim int) *array.Array {
	out := a
	for i := 0; i < pointNDim; i++ {
		out = out.Sum(-1, false)
	}
	return out
}

var parCfg = parallel.DefaultConfig()

// mapBatch applies a single-point kernel across the combined batch axes of
// the given point arrays, fanning the work over the worker pool. f receives
// one unbatched slice of every input and must return arrays of shape
// outShape. With no batch axes f is called once on the inputs themselves.
func mapBatch(pointNDim int, outShape array.Shape, f func(points ...*array.Array) *array.Array, points ...*array.Array) *array.Array {
	batch := batchShape(pointNDim, points...)
	if len(batch) == 0 {
		return f(points...)
	}
	n := batch.NumElements()
	flat := make([]*array.Array, len(points))
	for i, p := range points {
		pointShape := p.Shape()[p.NDim()-pointNDim:]
		target := append(batch.Clone(), pointShape...)
		flat[i] = p.BroadcastTo(target).Reshape(append([]int{n}, pointShape...)...)
	}
	outSize := outShape.NumElements()
	out := array.Zeros(append(array.Shape{n}, outShape...))
	outData := out.Data()
	parallel.For(n, func(i int) {
		args := make([]*array.Array, len(flat))
		for j, fp := range flat {
			args[j] = fp.Index(i)
		}
		r := f(args...)
		copy(outData[i*outSize:(i+1)*outSize], r.Data())
	}, parCfg)
	return out.Reshape(append(batch.Clone(), outShape...)...)
}
