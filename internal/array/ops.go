package array

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// binaryOp applies op elementwise with broadcasting. Same-shape pairs take
// the vectorized path; mixed shapes fall back to strided iteration.
func binaryOp(name string, a, b *Array, vectorized func(dst, a, b []float64), op func(x, y float64) float64) *Array {
	outShape, stretched, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out := newDense(outShape)
	if !stretched && a.shape.Equal(b.shape) {
		vectorized(out.data, a.data, b.data)
		return out
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)
	for i := range out.data {
		out.data[i] = op(a.data[flatIndex(i, outStrides, aStrides)], b.data[flatIndex(i, outStrides, bStrides)])
	}
	return out
}

// Add performs elementwise addition with broadcasting.
//
// Example:
//
//	a := array.Ones(array.Shape{3, 1})
//	b := array.Ones(array.Shape{3, 5})
//	c := a.Add(b) // shape [3, 5]
func (a *Array) Add(other *Array) *Array {
	return binaryOp("add", a, other,
		func(dst, x, y []float64) { copy(dst, x); floats.Add(dst, y) },
		func(x, y float64) float64 { return x + y })
}

// Sub performs elementwise subtraction with broadcasting.
func (a *Array) Sub(other *Array) *Array {
	return binaryOp("sub", a, other,
		func(dst, x, y []float64) { floats.SubTo(dst, x, y) },
		func(x, y float64) float64 { return x - y })
}

// Mul performs elementwise multiplication with broadcasting.
func (a *Array) Mul(other *Array) *Array {
	return binaryOp("mul", a, other,
		func(dst, x, y []float64) { floats.MulTo(dst, x, y) },
		func(x, y float64) float64 { return x * y })
}

// Div performs elementwise division with broadcasting.
func (a *Array) Div(other *Array) *Array {
	return binaryOp("div", a, other,
		func(dst, x, y []float64) { floats.DivTo(dst, x, y) },
		func(x, y float64) float64 { return x / y })
}

// AddScalar returns a + c elementwise.
func (a *Array) AddScalar(c float64) *Array {
	out := a.Clone()
	floats.AddConst(c, out.data)
	return out
}

// SubScalar returns a - c elementwise.
func (a *Array) SubScalar(c float64) *Array {
	return a.AddScalar(-c)
}

// MulScalar returns a * c elementwise.
func (a *Array) MulScalar(c float64) *Array {
	out := a.Clone()
	floats.Scale(c, out.data)
	return out
}

// DivScalar returns a / c elementwise.
func (a *Array) DivScalar(c float64) *Array {
	return a.MulScalar(1 / c)
}

// unaryOp applies f to every element of a fresh copy.
func (a *Array) unaryOp(f func(float64) float64) *Array {
	out := newDense(a.shape.Clone())
	for i, v := range a.data {
		out.data[i] = f(v)
	}
	return out
}

// Neg returns -a elementwise.
func (a *Array) Neg() *Array {
	return a.MulScalar(-1)
}

// Abs returns |a| elementwise.
func (a *Array) Abs() *Array {
	return a.unaryOp(math.Abs)
}

// Sqrt returns the elementwise square root.
func (a *Array) Sqrt() *Array {
	return a.unaryOp(math.Sqrt)
}

// Square returns a*a elementwise.
func (a *Array) Square() *Array {
	return a.unaryOp(func(v float64) float64 { return v * v })
}

// Exp returns e**a elementwise.
func (a *Array) Exp() *Array {
	return a.unaryOp(math.Exp)
}

// Log returns the elementwise natural logarithm.
func (a *Array) Log() *Array {
	return a.unaryOp(math.Log)
}

// Pow returns a**p elementwise.
func (a *Array) Pow(p float64) *Array {
	return a.unaryOp(func(v float64) float64 { return math.Pow(v, p) })
}
