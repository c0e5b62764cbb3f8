package array

import "fmt"

// Reshape returns an array with the same data in a new shape. One dimension
// may be -1 and is inferred from the element count.
//
// Example:
//
//	t := array.Arange(0, 12)      // shape [12]
//	m := t.Reshape(3, 4)          // shape [3, 4]
//	f := m.Reshape(-1)            // back to [12]
func (a *Array) Reshape(dims ...int) *Array {
	newShape := Of(dims...)
	infer := -1
	known := 1
	for i, dim := range newShape {
		switch {
		case dim == -1:
			if infer >= 0 {
				panic(fmt.Sprintf("reshape: at most one -1 allowed, got %v", newShape))
			}
			infer = i
		case dim <= 0:
			panic(fmt.Sprintf("reshape: invalid dimension %d in %v", dim, newShape))
		default:
			known *= dim
		}
	}
	if infer >= 0 {
		if len(a.data)%known != 0 {
			panic(fmt.Sprintf("reshape: cannot infer axis %d of %v from %d elements", infer, newShape, len(a.data)))
		}
		newShape[infer] = len(a.data) / known
	} else if known != len(a.data) {
		panic(fmt.Sprintf("reshape: incompatible shapes %v -> %v (element counts differ)", a.shape, newShape))
	}

	out := a.Clone()
	out.shape = newShape
	return out
}

// Ravel returns the array flattened to 1-D.
func (a *Array) Ravel() *Array {
	return a.Reshape(len(a.data))
}

// Transpose permutes the axes. With no arguments all axes are reversed,
// which for 2-D is the standard matrix transpose.
//
// Example:
//
//	t := array.Zeros(array.Shape{2, 3, 4})
//	p := t.Transpose(2, 0, 1) // shape [4, 2, 3]
func (a *Array) Transpose(axes ...int) *Array {
	ndim := len(a.shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: expected %d axes, got %d", ndim, len(axes)))
	}
	seen := make([]bool, ndim)
	outShape := make(Shape, ndim)
	for i, ax := range axes {
		ax = normAxis(ax, ndim)
		if seen[ax] {
			panic(fmt.Sprintf("transpose: axis %d repeated in %v", ax, axes))
		}
		seen[ax] = true
		axes[i] = ax
		outShape[i] = a.shape[ax]
	}

	out := newDense(outShape)
	inStrides := a.shape.ComputeStrides()
	permStrides := make([]int, ndim)
	for i, ax := range axes {
		permStrides[i] = inStrides[ax]
	}
	outStrides := outShape.ComputeStrides()
	for i := range out.data {
		out.data[i] = a.data[flatIndex(i, outStrides, permStrides)]
	}
	return out
}

// T is the 2-D transpose shortcut. Panics unless the array is 2-D.
func (a *Array) T() *Array {
	if len(a.shape) != 2 {
		panic("T() only works for 2D arrays")
	}
	return a.Transpose(1, 0)
}

// TransposeLast2 swaps the last two axes, transposing every matrix in a
// batch of matrices.
func (a *Array) TransposeLast2() *Array {
	ndim := len(a.shape)
	if ndim < 2 {
		panic(fmt.Sprintf("transposelast2: need at least 2 axes, got shape %v", a.shape))
	}
	axes := make([]int, ndim)
	for i := range axes {
		axes[i] = i
	}
	axes[ndim-2], axes[ndim-1] = ndim-1, ndim-2
	return a.Transpose(axes...)
}

// ExpandDims inserts a size-1 axis at the given position. The axis may be
// len(shape) (or -1 counts from there) to append at the end.
func (a *Array) ExpandDims(axis int) *Array {
	ndim := len(a.shape)
	if axis < 0 {
		axis += ndim + 1
	}
	if axis < 0 || axis > ndim {
		panic(fmt.Sprintf("expanddims: axis out of range for %dD array", ndim))
	}
	newShape := make(Shape, 0, ndim+1)
	newShape = append(newShape, a.shape[:axis]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, a.shape[axis:]...)
	out := a.Clone()
	out.shape = newShape
	return out
}

// Squeeze removes a size-1 axis. Panics when the axis does not have size 1.
func (a *Array) Squeeze(axis int) *Array {
	axis = normAxis(axis, len(a.shape))
	if a.shape[axis] != 1 {
		panic(fmt.Sprintf("squeeze: axis %d has size %d, not 1", axis, a.shape[axis]))
	}
	newShape := make(Shape, 0, len(a.shape)-1)
	newShape = append(newShape, a.shape[:axis]...)
	newShape = append(newShape, a.shape[axis+1:]...)
	out := a.Clone()
	out.shape = newShape
	return out
}

// Stack joins arrays of identical shape along a new axis.
//
// Example:
//
//	a, b := array.Ones(array.Shape{3}), array.Zeros(array.Shape{3})
//	s := array.Stack([]*array.Array{a, b}, 0) // shape [2, 3]
func Stack(arrays []*Array, axis int) *Array {
	if len(arrays) == 0 {
		panic("stack: need at least one array")
	}
	base := arrays[0].shape
	for _, arr := range arrays[1:] {
		if !arr.shape.Equal(base) {
			panic(fmt.Sprintf("stack: shape mismatch %v vs %v", base, arr.shape))
		}
	}
	expanded := make([]*Array, len(arrays))
	for i, arr := range arrays {
		ax := axis
		if ax < 0 {
			ax += len(base) + 1
		}
		expanded[i] = arr.ExpandDims(ax)
	}
	return Concat(expanded, axis)
}

// Concat joins arrays along an existing axis. All other axes must match.
func Concat(arrays []*Array, axis int) *Array {
	if len(arrays) == 0 {
		panic("concat: need at least one array")
	}
	ndim := len(arrays[0].shape)
	axis = normAxis(axis, ndim)

	total := 0
	for _, arr := range arrays {
		if len(arr.shape) != ndim {
			panic(fmt.Sprintf("concat: rank mismatch %v vs %v", arrays[0].shape, arr.shape))
		}
		for i := range arr.shape {
			if i != axis && arr.shape[i] != arrays[0].shape[i] {
				panic(fmt.Sprintf("concat: shape mismatch %v vs %v on axis %d", arrays[0].shape, arr.shape, i))
			}
		}
		total += arr.shape[axis]
	}

	outShape := arrays[0].shape.Clone()
	outShape[axis] = total
	out := newDense(outShape)

	// Copy block-wise: each source contributes contiguous runs of
	// blockSize elements for every index of the axes before `axis`.
	outer := 1
	for i := 0; i < axis; i++ {
		outer *= outShape[i]
	}
	inner := outShape.ComputeStrides()[axis]

	offset := 0
	for _, arr := range arrays {
		block := arr.shape[axis] * inner
		for o := 0; o < outer; o++ {
			src := arr.data[o*block : (o+1)*block]
			dstStart := o*total*inner + offset*inner
			copy(out.data[dstStart:dstStart+block], src)
		}
		offset += arr.shape[axis]
	}
	return out
}

// Take gathers the given indices along an axis, like fancy indexing with an
// integer vector. Negative indices are not supported.
func (a *Array) Take(indices []int, axis int) *Array {
	axis = normAxis(axis, len(a.shape))
	outShape := a.shape.Clone()
	outShape[axis] = len(indices)
	out := newDense(outShape)

	outer := 1
	for i := 0; i < axis; i++ {
		outer *= a.shape[i]
	}
	inner := a.shape.ComputeStrides()[axis]
	n := a.shape[axis]

	for o := 0; o < outer; o++ {
		for j, idx := range indices {
			if idx < 0 || idx >= n {
				panic(fmt.Sprintf("take: index %d out of bounds for axis %d (size %d)", idx, axis, n))
			}
			src := a.data[(o*n+idx)*inner : (o*n+idx+1)*inner]
			dst := out.data[(o*len(indices)+j)*inner : (o*len(indices)+j+1)*inner]
			copy(dst, src)
		}
	}
	return out
}

// Index selects position i along the first axis and drops that axis.
//
// Example:
//
//	x := array.Zeros(array.Shape{10, 3, 3})
//	p := x.Index(4) // shape [3, 3]
func (a *Array) Index(i int) *Array {
	if len(a.shape) == 0 {
		panic("index: cannot index a 0D array")
	}
	return a.Take([]int{i}, 0).Squeeze(0)
}
