package array

import "fmt"

// broadcastStrides computes the strides that address inShape's storage from
// coordinates of outShape. Axes that are missing or of size 1 in inShape get
// stride 0, so every output coordinate along them reads the same element.
func broadcastStrides(inShape, outShape Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}
	return strides
}

// flatIndex maps a flat index of the output layout to a flat index of a
// source array, using the source's broadcast-adjusted strides.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	idx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		idx += coord * inStrides[i]
	}
	return idx
}

// BroadcastTo returns a copy of a stretched to the given shape. Panics when
// the shapes are not broadcast compatible.
//
// Example:
//
//	a := array.FromValues(1, 2, 3)          // shape [3]
//	b := a.BroadcastTo(array.Shape{2, 3})   // rows repeat
func (a *Array) BroadcastTo(shape Shape) *Array {
	combined, _, err := BroadcastShapes(a.shape, shape)
	if err != nil {
		panic(fmt.Sprintf("broadcast: %v", err))
	}
	if !combined.Equal(shape) {
		panic(fmt.Sprintf("broadcast: cannot stretch %v to %v", a.shape, shape))
	}
	out := newDense(shape.Clone())
	outStrides := shape.ComputeStrides()
	inStrides := broadcastStrides(a.shape, shape)
	for i := range out.data {
		out.data[i] = a.data[flatIndex(i, outStrides, inStrides)]
	}
	return out
}
